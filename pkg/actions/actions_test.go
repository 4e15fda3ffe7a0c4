package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/pkg/signals"
)

func TestDo(t *testing.T) {
	ran := false
	a := Do(func() { ran = true })
	require.True(t, IsReady(a))
	assert.True(t, Perform(a))
	assert.True(t, ran)
}

func TestDoIf(t *testing.T) {
	ready := false
	ran := false
	a := DoIf(func() bool { return ready }, func() { ran = true })

	assert.False(t, Perform(a))
	assert.False(t, ran)

	ready = true
	assert.True(t, Perform(a))
	assert.True(t, ran)
}

func TestPerformNil(t *testing.T) {
	assert.False(t, Perform(nil))
	assert.False(t, IsReady(nil))
}

func TestCopyAndAssign(t *testing.T) {
	from, to := 5, 0
	require.True(t, Perform(Copy(signals.Direct(&to), signals.Direct(&from))))
	assert.Equal(t, 5, to)

	assert.False(t, IsReady(Copy(signals.Direct(&to), signals.Empty[int]())),
		"copy is not ready without a source value")

	require.True(t, Perform(Assign(signals.Direct(&to), 9)))
	assert.Equal(t, 9, to)
}

func TestToggle(t *testing.T) {
	flag := false
	a := Toggle(signals.Direct(&flag))
	require.True(t, Perform(a))
	assert.True(t, flag)
	require.True(t, Perform(a))
	assert.False(t, flag)
}

func TestSeqReadsBeforeWrites(t *testing.T) {
	x, y := 1, 2

	// Swap through a sequence of copies: both reads happen before
	// either write, so no temporary is needed.
	swap := Seq(
		Copy(signals.Direct(&x), signals.Direct(&y)),
		Copy(signals.Direct(&y), signals.Direct(&x)),
	)
	require.True(t, Perform(swap))
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestSeqReadiness(t *testing.T) {
	x := 0
	a := Seq(
		Assign(signals.Direct(&x), 1),
		Copy(signals.Direct(&x), signals.Empty[int]()),
	)
	assert.False(t, IsReady(a), "one unready member makes the sequence unready")
	assert.False(t, Perform(a))
	assert.Equal(t, 0, x, "nothing runs when the sequence is unready")
}

func TestPushAndBind(t *testing.T) {
	x := 0
	push := Push(signals.Direct(&x))
	require.True(t, Perform1(push, 42))
	assert.Equal(t, 42, x)

	bound := Bind(push, signals.Value(7))
	require.True(t, Perform(bound))
	assert.Equal(t, 7, x)

	assert.False(t, IsReady(Bind(push, signals.Empty[int]())))
}

func TestAppend(t *testing.T) {
	list := []string{"a"}
	base := signals.LambdaDuplex(nil,
		func() []string { return list },
		nil, nil,
		func(v []string) { list = v })

	require.True(t, Perform(Append(base, signals.Value("b"))))
	assert.Equal(t, []string{"a", "b"}, list)

	assert.False(t, IsReady(Append(base, signals.Empty[string]())))
}
