package frame_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/traceweave/traceweave/pkg/traceweave/frame"
)

func TestFrameString(t *testing.T) {
	tests := []struct {
		name string
		f    frame.Frame
		want string
	}{
		{
			"full frame with column",
			frame.New(0, "/src/app/handler.go", 42, 7, "app.(*Server).handle"),
			"app.(*Server).handle (/src/app/handler.go:42:7)",
		},
		{
			"runtime frame without column",
			frame.New(0, "/src/app/main.go", 17, 0, "main.run"),
			"main.run (/src/app/main.go:17)",
		},
		{
			"unresolved position",
			frame.New(0, "", 0, 0, "main.run"),
			"main.run (<unknown>)",
		},
		{
			"zero frame",
			frame.Frame{},
			"<anonymous> (<unknown>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.String())
		})
	}
}

func TestFormatEmptyTrace(t *testing.T) {
	assert.Empty(t, frame.Format(nil))
	assert.Empty(t, frame.Format([]frame.Frame{}))
}

// TestFormatGolden pins the rendered trace shape against a golden file.
// Regenerate with: go test ./pkg/traceweave/frame -update
func TestFormatGolden(t *testing.T) {
	frames := []frame.Frame{
		frame.New(0, "/src/app/handler.go", 42, 7, "app.(*Server).handle"),
		frame.New(0, "/src/app/main.go", 17, 0, "main.run"),
		frame.New(0, "/src/app/main.go", 9, 0, ""),
		frame.Frame{},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "stitched_trace", []byte(frame.Format(frames)))
}
