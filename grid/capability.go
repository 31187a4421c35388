// SPDX-License-Identifier: MIT

package grid

import "context"

// Kind names a member of the closed set of objects that cross the engine
// boundary.
type Kind uint8

const (
	KindGrid Kind = iota + 1
	KindVector
	KindMatrix
	KindSolver
	KindCommunicator
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindSolver:
		return "solver"
	case KindCommunicator:
		return "communicator"
	default:
		return "unknown"
	}
}

// Object is implemented only by types of this package. The unexported
// method keeps the set closed so a switch over Kind is exhaustive.
type Object interface {
	Kind() Kind
	object()
}

var (
	_ Object = (*Grid)(nil)
	_ Object = SelfCommunicator{}
)

// As converts o to T when o is a T; ok is false otherwise (including a nil
// o).
func As[T Object](o Object) (T, bool) {
	t, ok := o.(T)

	return t, ok
}

// Communicator identifies the process group a grid is distributed over.
type Communicator interface {
	Rank() int
	Size() int
}

// SelfCommunicator is the single-process communicator: rank 0 of 1.
type SelfCommunicator struct{}

func (SelfCommunicator) Rank() int  { return 0 }
func (SelfCommunicator) Size() int  { return 1 }
func (SelfCommunicator) Kind() Kind { return KindCommunicator }
func (SelfCommunicator) object()    {}

// RemoteHandle is an object living in another address space.
type RemoteHandle interface {
	Endpoint() string
	Kind() Kind
	Close() error
}

// Connector builds RemoteHandles from endpoint URLs.
type Connector interface {
	Connect(ctx context.Context, endpoint string) (RemoteHandle, error)
}

// NoRemote is the Connector of builds without a remote transport.
type NoRemote struct{}

// Connect always fails with ErrRemoteUnsupported (or the context error).
func (NoRemote) Connect(ctx context.Context, endpoint string) (RemoteHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return nil, &RemoteError{Endpoint: endpoint, Err: ErrRemoteUnsupported}
}

// RemoteError records which endpoint a Connector failed on.
type RemoteError struct {
	Endpoint string
	Err      error
}

func (e *RemoteError) Error() string { return "grid: connect " + e.Endpoint + ": " + e.Err.Error() }
func (e *RemoteError) Unwrap() error { return e.Err }
