package checkpoint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name      string
		list      string
		all       bool
		cats      []string
		expectOff bool
		trap      bool
	}{
		{name: "empty", list: ""},
		{name: "single category", list: "threadpool", cats: []string{"threadpool"}},
		{name: "several categories", list: "threadpool:queue", cats: []string{"threadpool", "queue"}},
		{name: "all keyword", list: "all", all: true},
		{name: "star", list: "*", all: true},
		{name: "expect off", list: "all:expect-off", all: true, expectOff: true},
		{name: "trap", list: "threadpool:expect-trap", cats: []string{"threadpool"}, trap: true},
		{name: "fatal alias", list: "expect-fatal", trap: true},
		{name: "stray separators", list: "::queue:", cats: []string{"queue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSettings(tt.list)

			assert.Equal(t, tt.all, s.All)
			assert.Equal(t, tt.expectOff, s.ExpectOff)
			assert.Equal(t, tt.trap, s.Trap)
			assert.Len(t, s.Categories, len(tt.cats))
			for _, c := range tt.cats {
				assert.True(t, s.Active(c), "category %s", c)
			}
		})
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "queue:expect-trap")

	s := SettingsFromEnv()
	assert.True(t, s.Active("queue"))
	assert.False(t, s.Active("threadpool"))
	assert.True(t, s.Trap)
}

func TestCheckPoint_DebugGatedByCategory(t *testing.T) {
	var buf bytes.Buffer

	quiet := New("threadpool", WithOutput(&buf), WithSettings(ParseSettings("queue")))
	quiet.Debug("hidden")
	assert.False(t, quiet.Active())
	assert.Empty(t, buf.String())

	loud := New("threadpool", WithOutput(&buf), WithSettings(ParseSettings("threadpool")))
	loud.Debug("shown", "worker_id", 1)
	assert.True(t, loud.Active())
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "category=threadpool")
	assert.Contains(t, buf.String(), "worker_id=1")
}

func TestCheckPoint_LevelsAlwaysLogged(t *testing.T) {
	var buf bytes.Buffer
	cp := New("threadpool", WithOutput(&buf), WithSettings(Settings{}))

	cp.Info("info message")
	cp.Warn("warn message")
	cp.Error("error message")

	out := buf.String()
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.Equal(t, "threadpool", cp.Category())
}

func TestCheckPoint_Expect(t *testing.T) {
	t.Run("passing expectation is silent", func(t *testing.T) {
		var buf bytes.Buffer
		cp := New("c", WithOutput(&buf), WithSettings(Settings{}))

		assert.True(t, cp.Expect(true, "never logged"))
		assert.Empty(t, buf.String())
	})

	t.Run("failed expectation logs", func(t *testing.T) {
		var buf bytes.Buffer
		cp := New("c", WithOutput(&buf), WithSettings(Settings{}))

		assert.False(t, cp.Expect(false, "queue must be empty", "size", 3))
		assert.Contains(t, buf.String(), "expectation failed: queue must be empty")
		assert.Contains(t, buf.String(), "size=3")
	})

	t.Run("expect-off skips logging", func(t *testing.T) {
		var buf bytes.Buffer
		cp := New("c", WithOutput(&buf), WithSettings(ParseSettings("expect-off")))

		assert.False(t, cp.Expect(false, "ignored"))
		assert.Empty(t, buf.String())
	})

	t.Run("trap panics with violation", func(t *testing.T) {
		var buf bytes.Buffer
		cp := New("c", WithOutput(&buf), WithSettings(ParseSettings("expect-trap")))

		defer func() {
			r := recover()
			require.NotNil(t, r)
			v, ok := r.(*Violation)
			require.True(t, ok)
			assert.Equal(t, "c", v.Category)
			assert.Equal(t, "checkpoint c: expectation failed: boom", v.Error())
		}()
		cp.Hit("boom")
	})
}
