// Package testutil gives tests lifecycle control over components.
//
// A TestComponent is a component.Component that can also be reset,
// snapshotted and restored. testutil.T(t).Setup(c) starts c and stops it
// when the test ends:
//
//	func TestTranscribe(t *testing.T) {
//	    server := localaitest.New(localaitest.WithText("hello"))
//	    testutil.T(t).Setup(server)
//	    // point the provider at server.URL()
//	}
//
// Manager groups several components that start in order and stop in
// reverse. Fakes for external services live in subpackages such as
// testutil/localaitest.
package testutil
