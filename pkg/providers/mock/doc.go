// Package mock provides a scripted client for testing code built on the
// model factory.
//
// The client implements llm.Client with queued responses and errors, an
// echo fallback, optional latency and a call log. Constructor plugs it into
// the factory in place of a real provider and records every client built.
//
// The mock never touches the network.
package mock
