package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/psm"
	"github.com/findy-network/findy-aries-fsm/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	// message factors of the std protocols for aries.Parse
	_ "github.com/findy-network/findy-aries-fsm/std/basicmessage"
	_ "github.com/findy-network/findy-aries-fsm/std/connection"
	_ "github.com/findy-network/findy-aries-fsm/std/discovery"
	_ "github.com/findy-network/findy-aries-fsm/std/issuecredential"
	_ "github.com/findy-network/findy-aries-fsm/std/outofband"
	_ "github.com/findy-network/findy-aries-fsm/std/presentproof"
	_ "github.com/findy-network/findy-aries-fsm/std/trustping"
)

const envPrefix = "FINDYFSM"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: utils.Version,
	Use:     "findy-fsm",
	Short:   "Findy Aries protocol state machine tool",
	Long: `
Findy Aries protocol state machine tool

Parses DIDComm messages, inspects the stored protocol state machines, and
runs the message routing of a stored machine over a set of messages.
	`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra prints the error already
		os.Exit(1)
	}
}

// RootCmd returns a current root command which can be used for adding own
// commands in an own repo.
func RootCmd() *cobra.Command {
	return rootCmd
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile string
	logging string
	db      string
	key     string
}

var rootFlags = RootFlags{}

var rootEnvs = map[string]string{
	"config":  "CONFIG",
	"logging": "LOGGING",
	"db":      "DB",
	"key":     "KEY",
}

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "", flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=2", flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.StringVar(&rootFlags.db, "db", "findy-fsm.bolt", flagInfo("state machine db's filename", "", rootEnvs["db"]))
	flags.StringVar(&rootFlags.key, "key", "", flagInfo("hex encoded AES key of the db", "", rootEnvs["key"]))

	try.To(viper.BindPFlag("logging", flags.Lookup("logging")))
	try.To(viper.BindPFlag("db", flags.Lookup("db")))
	try.To(viper.BindPFlag("key", flags.Lookup("key")))

	try.To(BindEnvs(rootEnvs, ""))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.db = viper.GetString("db")
	rootFlags.key = viper.GetString("key")
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		printInfo := true
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
			printInfo = false
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		// If a config file is found, read it in.
		if err := viper.ReadInConfig(); err == nil && printInfo {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// ParseLoggingArgs feeds the logging startup arguments to glog's flags.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}

// storeConfig is the psm.Config of the root flags.
func storeConfig() psm.Config {
	return psm.Config{
		Filename: rootFlags.db,
		Key:      rootFlags.key,
	}
}

// BindEnvs calls viper.BindEnv with envMap and cmdName which can be empty if
// flag is general.
func BindEnvs(envMap map[string]string, cmdName string) (err error) {
	defer err2.Handle(&err)
	for flagKey, envName := range envMap {
		finalEnvName := getEnvName(cmdName, envName)
		try.To(viper.BindEnv(flagKey, finalEnvName))
	}
	return nil
}

func flagInfo(info, cmdPrefix, envName string) string {
	return info + ", " + getEnvName(cmdPrefix, envName)
}

func getEnvName(cmdName, envName string) string {
	if cmdName == "" {
		return envPrefix + "_" + strings.ToUpper(envName)
	}
	return envPrefix + "_" + strings.ToUpper(cmdName) + "_" + envName
}

func handleViperFlags(cmd *cobra.Command) {
	setRequiredStringFlags(cmd)
	if cmd.HasParent() {
		handleViperFlags(cmd.Parent())
	}
}

func setRequiredStringFlags(cmd *cobra.Command) {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}
