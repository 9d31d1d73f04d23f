/*
Package protocol is package for the Aries protocol state machines. The state
machines implement the actual protocol state transitions, and the protocol
specific messages are located in std package. The machines are stored
between the protocol turns by agent/psm.

Every machine is a value: a transition returns a new machine and the old one
stays as it was. The machines don't do any I/O by themselves, they call the
capabilities of core and the send function they are given.
*/
package protocol
