/*
Package agent holds the shared driver packages of the protocol state
machines. The agent package is empty itself. All the functionality is inside
sub-packages:

	aries       the closed set of the DIDComm messages and their parsing
	fsm         the routing predicate, thread checks, and persistence envelope
	pltype      the protocol and message type names
	psm         the encrypted store of the machines between protocol turns
	revocation  the publisher of the batched revocations
	ssi         an in-memory wallet
	utils       nonces and IDs
*/
package agent
