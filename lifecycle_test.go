package vec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errCloneFailed = errors.New("clone failed")

// resCounters tracks the lifetime of res values across one test. Every
// constructed res (newRes or a successful clone) must be disposed exactly
// once by the time the owning vector is released.
type resCounters struct {
	created  int
	clones   int
	disposes int
	calls    int // CloneElem invocations, including failed ones
	failAt   int // CloneElem call number that fails; 0 means never
}

func (c *resCounters) balanced() bool { return c.disposes == c.created }

// res is a resource-owning, fallibly-copyable element type that must not
// be relocated by bit copy. It exercises all three lifecycle interfaces.
type res struct {
	id int
	c  *resCounters
}

func newRes(c *resCounters, id int) res {
	c.created++
	return res{id: id, c: c}
}

func (r res) CloneElem() (res, error) {
	r.c.calls++
	if r.c.failAt != 0 && r.c.calls == r.c.failAt {
		return res{}, errCloneFailed
	}
	r.c.created++
	r.c.clones++
	return res{id: r.id, c: r.c}, nil
}

func (r res) DisposeElem() {
	if r.c != nil {
		r.c.disposes++
	}
}

func (res) NoBitMove() {}

// ids snapshots the element ids in order.
func ids(v *Vector[res]) []int {
	out := make([]int, 0, v.Len())
	for _, r := range v.All() {
		out = append(out, r.id)
	}
	return out
}

func fillRes(t *testing.T, c *resCounters, n int) *Vector[res] {
	t.Helper()
	v := New[res]()
	require.NoError(t, v.Reserve(n))
	for i := 0; i < n; i++ {
		require.NoError(t, v.PushBack(newRes(c, i)))
	}
	return v
}

func TestElemTraits(t *testing.T) {
	require.Equal(t, traits{}, elemTraits[int]())
	require.Equal(t, traits{clone: true, dispose: true, copyOnGrow: true}, elemTraits[res]())
	require.Equal(t, traits{dispose: true}, elemTraits[disposable]())
	require.Equal(t, traits{dispose: true}, elemTraits[pinnedNoClone]())
}

func TestDisposerAccounting(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 5)

	v.PopBack()
	require.Equal(t, 1, c.disposes)

	v.Erase(0)
	require.Equal(t, 2, c.disposes)
	require.Equal(t, []int{1, 2, 3}, ids(v))

	v.Set(0, newRes(c, 10))
	require.Equal(t, 3, c.disposes)

	v.Clear()
	require.Equal(t, 6, c.disposes)

	v.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestResizeDownDisposes(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 4)

	require.NoError(t, v.Resize(1))
	require.Equal(t, 3, c.disposes)
	require.Equal(t, []int{0}, ids(v))

	v.Release()
	require.True(t, c.balanced())
}

func TestGrowthCopyTransfer(t *testing.T) {
	// res is NoBitMove with a Cloner, so growth transfers by clone and
	// disposes the originals.
	c := &resCounters{}
	v := New[res]()
	require.NoError(t, v.Reserve(2))
	require.NoError(t, v.PushBack(newRes(c, 0)))
	require.NoError(t, v.PushBack(newRes(c, 1)))

	require.NoError(t, v.PushBack(newRes(c, 2))) // grows to 4
	require.Equal(t, 2, c.clones)
	require.Equal(t, 2, c.disposes)
	require.Equal(t, []int{0, 1, 2}, ids(v))

	v.Release()
	require.True(t, c.balanced())
}

func TestGrowthCloneFailureStrongGuarantee(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 4)
	before := ids(v)

	c.failAt = c.calls + 3 // fail while transferring the third element
	err := v.PushBack(newRes(c, 99))
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, 4, v.Len())
	require.Equal(t, 4, v.Cap())
	require.Equal(t, before, ids(v))

	c.failAt = 0
	v.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestReserveCloneFailure(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 3)

	c.failAt = c.calls + 2
	err := v.Reserve(16)
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, 3, v.Len())
	require.Equal(t, 3, v.Cap())
	require.Equal(t, []int{0, 1, 2}, ids(v))

	c.failAt = 0
	v.Release()
	require.True(t, c.balanced())
}

func TestEmplaceGrowthSuffixFailure(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 4)
	before := ids(v)

	// Inserting at 2 transfers prefix [0,2) then suffix [2,4); failing on
	// the fourth clone lands mid-suffix.
	c.failAt = c.calls + 4
	err := v.Insert(2, newRes(c, 99))
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, before, ids(v))
	require.Equal(t, 4, v.Cap())

	c.failAt = 0
	v.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestEmplaceFactoryFailure(t *testing.T) {
	errBoom := errors.New("boom")
	fail := func() (int, error) { return 0, errBoom }

	t.Run("no growth", func(t *testing.T) {
		v := New[int]()
		require.NoError(t, v.Append(1, 2, 3))
		require.NoError(t, v.Reserve(8))

		_, err := v.Emplace(1, fail)
		require.ErrorIs(t, err, errBoom)
		require.Equal(t, []int{1, 2, 3}, collect(v))
	})

	t.Run("growth", func(t *testing.T) {
		v := New[int]()
		require.NoError(t, v.Append(1, 2, 3, 4)) // size == cap

		_, err := v.Emplace(2, fail)
		require.ErrorIs(t, err, errBoom)
		require.Equal(t, 4, v.Len())
		require.Equal(t, 4, v.Cap())
		require.Equal(t, []int{1, 2, 3, 4}, collect(v))
	})
}

func TestMakeFuncRollback(t *testing.T) {
	errBoom := errors.New("boom")
	c := &resCounters{}

	_, err := MakeFunc(5, func(i int) (res, error) {
		if i == 3 {
			return res{}, errBoom
		}
		return newRes(c, i), nil
	})
	require.ErrorIs(t, err, errBoom)
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestCloneDeepCopiesAndRollsBack(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 3)

	cp, err := v.Clone()
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, ids(cp))
	require.Equal(t, 3, c.clones)

	c.failAt = c.calls + 2
	_, err = v.Clone()
	require.ErrorIs(t, err, errCloneFailed)

	c.failAt = 0
	v.Release()
	cp.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestAssignCloneFailureKeepsTarget(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 2)
	rhs := fillRes(t, c, 6)

	// rhs does not fit: Assign builds a temporary clone first, so a clone
	// failure leaves the target fully unmodified.
	c.failAt = c.calls + 3
	err := v.Assign(rhs)
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, []int{0, 1}, ids(v))
	require.Equal(t, 2, v.Cap())

	c.failAt = 0
	v.Release()
	rhs.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestAssignTailRollback(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 2)
	require.NoError(t, v.Reserve(8))
	rhs := fillRes(t, c, 6)

	// rhs fits in place; fail while cloning the growing tail. The
	// partially built tail is rolled back and the length is unchanged.
	c.failAt = c.calls + 4
	err := v.Assign(rhs)
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, 2, v.Len())

	c.failAt = 0
	v.Release()
	rhs.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

func TestAssignDisposesOverwrittenAndSurplus(t *testing.T) {
	c := &resCounters{}
	v := fillRes(t, c, 5)
	rhs := fillRes(t, c, 2)

	require.NoError(t, v.Assign(rhs))
	require.Equal(t, []int{0, 1}, ids(v))

	v.Release()
	rhs.Release()
	require.True(t, c.balanced(), "created %d, disposed %d", c.created, c.disposes)
}

// disposable owns a resource but relocates safely by bit copy, so growth
// must move it without disposing the originals.
type disposable struct {
	done *int
}

func (d disposable) DisposeElem() {
	if d.done != nil {
		*d.done++
	}
}

func TestBitMoveTransferSkipsDispose(t *testing.T) {
	done := 0
	v := New[disposable]()
	for i := 0; i < 10; i++ {
		require.NoError(t, v.PushBack(disposable{done: &done}))
	}
	// Several growths happened; none of them may dispose a live element.
	require.Equal(t, 0, done)

	v.Release()
	require.Equal(t, 10, done)
}

// pinnedNoClone declares bit relocation unsafe but offers no copy
// alternative, so growth falls back to the bit move.
type pinnedNoClone struct {
	done *int
}

func (p pinnedNoClone) DisposeElem() {
	if p.done != nil {
		*p.done++
	}
}

func (pinnedNoClone) NoBitMove() {}

func TestNoBitMoveWithoutClonerFallsBack(t *testing.T) {
	done := 0
	v := New[pinnedNoClone]()
	for i := 0; i < 5; i++ {
		require.NoError(t, v.PushBack(pinnedNoClone{done: &done}))
	}
	require.Equal(t, 0, done)

	v.Release()
	require.Equal(t, 5, done)
}
