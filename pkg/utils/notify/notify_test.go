package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/timer"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "stage '%s' failed", "build")

	assert.Contains(t, out.String(), "✗")
	assert.Contains(t, out.String(), "stage 'build' failed")
}

func TestWarningf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Warningf(&out, "no pipeline.yaml found")

	assert.Contains(t, out.String(), "⚠")
	assert.Contains(t, out.String(), "no pipeline.yaml found")
}

func TestActivityf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Activityf(&out, "stage '%s'", "checkout")

	assert.Contains(t, out.String(), "►")
	assert.Contains(t, out.String(), "stage 'checkout'")
}

func TestGeneratef(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Generatef(&out, "generated '%s'", "pipeline.yaml")

	assert.Contains(t, out.String(), "✚")
	assert.Contains(t, out.String(), "generated 'pipeline.yaml'")
}

func TestSuccessf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Successf(&out, "pipeline complete")

	assert.Contains(t, out.String(), "✔")
	assert.Contains(t, out.String(), "pipeline complete")
}

func TestSuccessWithTimerf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tmr := timer.NewWithClock(func() time.Time {
		clock = clock.Add(time.Second)

		return clock
	})

	notify.SuccessWithTimerf(&out, tmr, "stage '%s' succeeded", "build")

	assert.Contains(t, out.String(), "stage 'build' succeeded")
	assert.Contains(t, out.String(), "⏲")
}

func TestInfof(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Infof(&out, "using config %s", "pipeline.yaml")

	assert.Contains(t, out.String(), "ℹ")
	assert.Contains(t, out.String(), "using config pipeline.yaml")
}

func TestTitlef(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Titlef(&out, "🚀", "running pipeline")

	assert.Contains(t, out.String(), "🚀")
	assert.Contains(t, out.String(), "running pipeline")
}

func TestMultilineContentIsIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "first line\nsecond line")

	assert.Contains(t, out.String(), "first line")
	assert.Contains(t, out.String(), "  second line")
}
