package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-roleform/internal/config"
	"github.com/goliatone/go-roleform/pkg/renderers/tui"
)

func testConfig(t *testing.T, environment map[string]string) config.Config {
	t.Helper()
	if environment == nil {
		environment = map[string]string{}
	}
	cfg, err := config.Parse(env.Options{Environment: environment})
	require.NoError(t, err)
	return cfg
}

func TestServeListenerShutsDownCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	a, err := New(testConfig(t, nil), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.ServeListener(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/form?role=planner")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `data-field="experienceYear"`)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeListenerReportsServeErrors(t *testing.T) {
	a, err := New(testConfig(t, nil), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = a.ServeListener(context.Background(), ln)
	require.Error(t, err)
}

func TestRenderFormUsesConfiguredLocaleAndVariant(t *testing.T) {
	a, err := New(testConfig(t, map[string]string{
		"ROLEFORM_LOCALE":        "ko",
		"ROLEFORM_THEME_VARIANT": "dark",
	}), nil)
	require.NoError(t, err)

	out, err := a.RenderForm(context.Background(), "", "designer", "")
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "직원 등록 폼")
	assert.Contains(t, html, `data-theme-variant="dark"`)
	assert.Contains(t, html, `data-field="portfolio"`)

	out, err = a.RenderForm(context.Background(), "vanilla", "", "en")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Employee registration")
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	cfg := testConfig(t, nil)
	cfg.ThemeVariant = "sepia"
	_, err := New(cfg, nil)
	require.Error(t, err)
}

type scriptedDriver struct {
	inputs  []string
	selects []int
	texts   []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	if len(d.texts) == 0 {
		return "", errors.New("no text")
	}
	v := d.texts[0]
	d.texts = d.texts[1:]
	return v, nil
}

func (d *scriptedDriver) Info(context.Context, string) error  { return nil }
func (d *scriptedDriver) Error(context.Context, string) error { return nil }

func TestFillSubmitsToStdoutSink(t *testing.T) {
	var stdout bytes.Buffer
	driver := &scriptedDriver{
		inputs:  []string{"Kim", "3"},
		selects: []int{2},
		texts:   []string{"Built X"},
	}
	a, err := New(testConfig(t, map[string]string{"ROLEFORM_SINK": "stdout"}), nil,
		WithStdout(&stdout), WithPromptDriver(driver))
	require.NoError(t, err)

	out, err := a.Fill(context.Background(), "")
	require.NoError(t, err)

	want := `{"name":"Kim","role":"planner","experienceYear":3,"projectSummary":"Built X"}`
	assert.Equal(t, want, string(out))
	assert.Equal(t, "form submission result: "+want+"\n", stdout.String())
}

func TestRenderersRegistered(t *testing.T) {
	a, err := New(testConfig(t, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tui", "vanilla"}, a.Renderers.List())
	def, err := a.Renderers.Get("")
	require.NoError(t, err)
	assert.Equal(t, "vanilla", def.Name())
}

func TestRenderFormResolvesRendererByName(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Kim", "3"},
		selects: []int{2},
		texts:   []string{"Built X"},
	}
	a, err := New(testConfig(t, nil), nil, WithPromptDriver(driver), WithStdout(io.Discard))
	require.NoError(t, err)

	out, err := a.RenderForm(context.Background(), tui.Name, "", "")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Kim","role":"planner","experienceYear":3,"projectSummary":"Built X"}`, string(out))

	_, err = a.RenderForm(context.Background(), "preact", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `renderer "preact" not found`)
}

func TestFillUsesConfiguredOutputFormat(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Kim", "3"},
		selects: []int{2},
		texts:   []string{"Built X"},
	}
	a, err := New(testConfig(t, nil), nil,
		WithPromptDriver(driver), WithStdout(io.Discard), WithOutputFormat(tui.OutputFormatPrettyText))
	require.NoError(t, err)

	out, err := a.Fill(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "name: Kim\nrole: planner\nexperienceYear: 3\nprojectSummary: Built X\n", string(out))
}
