package hook_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceweave/traceweave/pkg/traceweave"
	"github.com/traceweave/traceweave/pkg/traceweave/frame"
	"github.com/traceweave/traceweave/pkg/traceweave/hook"
)

func userFrame(fn string, line int) frame.Frame {
	return frame.New(0, "/src/app/app.go", line, 0, fn)
}

func internalFrame(fn string) frame.Frame {
	return frame.New(0, "/go/pkg/mod/traceweave/engine.go", 10, 0, fn)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		in   []frame.Frame
		want []string
	}{
		{
			name: "drops engine frames",
			in: []frame.Frame{
				internalFrame("github.com/traceweave/traceweave/pkg/traceweave.(*Engine).Scheduled"),
				userFrame("app.handleRequest", 42),
			},
			want: []string{"app.handleRequest"},
		},
		{
			name: "drops subpackage frames",
			in: []frame.Frame{
				internalFrame("github.com/traceweave/traceweave/pkg/traceweave/frame.RuntimeSource.Capture"),
				userFrame("main.main", 17),
			},
			want: []string{"main.main"},
		},
		{
			name: "keeps frames without a function",
			in: []frame.Frame{
				frame.New(0, "/src/app/main.go", 9, 0, ""),
				userFrame("main.main", 17),
			},
			want: []string{"", "main.main"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hook.Filter(tt.in)
			require.Len(t, got, len(tt.want))
			for i, fn := range tt.want {
				gotFn, _ := got[i].Function()
				assert.Equal(t, fn, gotFn)
			}
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	in := []frame.Frame{
		userFrame("app.first", 1),
		internalFrame("github.com/traceweave/traceweave/pkg/traceweave.(*Engine).stitch"),
		userFrame("app.second", 2),
	}
	hook.Filter(in)

	fn, _ := in[1].Function()
	assert.Equal(t, "github.com/traceweave/traceweave/pkg/traceweave.(*Engine).stitch", fn)
	assert.Len(t, in, 3)
}

type stubComposer struct {
	traces map[traceweave.ID][]frame.Frame
}

func (s stubComposer) Compose(id traceweave.ID) []frame.Frame {
	return s.traces[id]
}

func TestExtenderAppendsAncestry(t *testing.T) {
	composer := stubComposer{traces: map[traceweave.ID][]frame.Frame{
		7: {userFrame("app.scheduleWork", 30), userFrame("main.main", 12)},
	}}
	ext := hook.NewExtender(composer)

	current := []frame.Frame{userFrame("app.onPanic", 55)}
	got := ext.Extend(7, current)

	require.Len(t, got, 3)
	fn, _ := got[0].Function()
	assert.Equal(t, "app.onPanic", fn)
	fn, _ = got[1].Function()
	assert.Equal(t, "app.scheduleWork", fn)
	fn, _ = got[2].Function()
	assert.Equal(t, "main.main", fn)

	// The input slice stays untouched.
	assert.Len(t, current, 1)
}

func TestExtenderUntrackedOperation(t *testing.T) {
	ext := hook.NewExtender(stubComposer{})

	current := []frame.Frame{userFrame("app.onPanic", 55)}
	got := ext.Extend(99, current)

	require.Len(t, got, 1)
	fn, _ := got[0].Function()
	assert.Equal(t, "app.onPanic", fn)
}

func TestExtenderWithEngine(t *testing.T) {
	eng := traceweave.New()
	eng.Scheduled(1, "TIMER", traceweave.Root)

	ext := hook.NewExtender(eng)
	got := ext.Extend(1, []frame.Frame{userFrame("app.onPanic", 55)})

	require.Greater(t, len(got), 1)
	fn, _ := got[0].Function()
	assert.Equal(t, "app.onPanic", fn)
	fn, ok := got[1].Function()
	require.True(t, ok)
	assert.Contains(t, fn, "TestExtenderWithEngine")
}

func TestFormatFiltersInternalFrames(t *testing.T) {
	out := hook.Format([]frame.Frame{
		internalFrame("github.com/traceweave/traceweave/pkg/traceweave.(*Engine).Scheduled"),
		userFrame("app.handleRequest", 42),
	})

	assert.NotContains(t, out, "Engine")
	assert.Contains(t, out, "at app.handleRequest (/src/app/app.go:42)")
}

func TestWriteTrace(t *testing.T) {
	var b strings.Builder
	err := hook.WriteTrace(&b, []frame.Frame{userFrame("main.main", 17)})
	require.NoError(t, err)
	assert.Equal(t, "    at main.main (/src/app/app.go:17)\n", b.String())
}

func TestFormatGolden(t *testing.T) {
	frames := []frame.Frame{
		internalFrame("github.com/traceweave/traceweave/pkg/traceweave.(*Engine).Scheduled"),
		userFrame("app.handleRequest", 42),
		internalFrame("github.com/traceweave/traceweave/pkg/traceweave/frame.RuntimeSource.Capture"),
		frame.New(0, "/src/app/main.go", 9, 0, ""),
		userFrame("main.main", 17),
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "filtered_trace", []byte(hook.Format(frames)))
}
