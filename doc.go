/*
Package main is the CLI of the Findy Aries protocol state machines. The
state machines themselves are a library: they are stepped by an agent which
owns the transport, the wallet and the ledger, and which stores the machines
between the protocol turns.

The CLI is a tool for that work. It parses DIDComm messages, prints the
stored machines, and runs the message routing of a stored machine over a
directory of messages.

# Sub-packages

	agent    includes the shared driver packages: aries, fsm, psm, revocation, ..
	cmd      implements the CLI commands
	core     defines the capabilities the machines need from the agent
	indy     implements the capabilities with libindy
	protocol includes the state machines of the Aries protocols
	std      a root package for Aries protocol messages
*/
package main
