package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/services"
)

func newTestStore(t *testing.T, names ...string) *services.GraphStoreService {
	t.Helper()
	store := services.NewGraphStoreService(memory.NewKeyValueStore(0))
	for _, name := range names {
		result := domain.ExtractionResult{
			Entities: []domain.Entity{{Text: name, Type: "PERSON"}},
		}
		_, err := store.Save(context.Background(), result, name, domain.ItemSourceText, "")
		require.NoError(t, err)
	}
	return store
}

func sampleGraph() domain.KnowledgeGraph {
	return domain.KnowledgeGraph{
		Nodes: []domain.GraphNode{
			{ID: "a", Label: "Alice", Type: "PERSON", Weight: 1},
			{ID: "b", Label: "Acme", Type: "ORGANIZATION", Weight: 1},
		},
		Edges: []domain.GraphEdge{
			{ID: "e", Source: "a", Target: "b", Type: "WORKS_AT", Weight: 1},
		},
	}
}

// runCmd executes cmd, expanding batches, and returns the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))

	require.NoError(t, err)
	assert.Equal(t, messages.ViewGraphs, app.CurrentView())
	assert.NotNil(t, app.GraphsView())
	assert.NotNil(t, app.GraphView())
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestNewApp_MissingStore(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingGraphStore)
	assert.Nil(t, app)
}

func TestNewApp_WithGraphNeedsNoStore(t *testing.T) {
	app, err := NewApp(&Ports{}, WithGraph("Demo", sampleGraph()))

	require.NoError(t, err)
	assert.Equal(t, messages.ViewGraph, app.CurrentView())
	assert.Nil(t, app.GraphsView())
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
}

func TestApp_InitLoadsStoredGraphs(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t, "first"), nil))
	require.NoError(t, err)

	var loaded *messages.GraphsLoaded
	for _, msg := range runCmd(app.Init()) {
		if m, ok := msg.(messages.GraphsLoaded); ok {
			loaded = &m
		}
	}

	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "first", loaded.Items[0].Name)
}

func TestApp_InitShowsInitialGraph(t *testing.T) {
	filter := domain.FilterOptions{NodeTypes: []string{"PERSON"}}
	app, err := NewApp(&Ports{}, WithGraph("Demo", sampleGraph()), WithFilter(filter))
	require.NoError(t, err)

	cmd := app.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, "Demo", app.GraphView().Title())
	assert.Equal(t, filter, app.GraphView().Filter())
	assert.Len(t, app.GraphView().Surface().Graph().Nodes, 1)
	assert.Len(t, app.GraphView().Surface().Original().Nodes, 2)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)
	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "kgraph")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_OpenStoredGraph(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t, "first"), nil))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	for _, msg := range runCmd(app.Init()) {
		app.Update(msg)
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	opened := cmd()
	require.IsType(t, messages.GraphOpened{}, opened)

	_, cmd = app.Update(opened)

	assert.Equal(t, messages.ViewGraph, app.CurrentView())
	assert.Equal(t, "first", app.GraphView().Title())
	assert.NotNil(t, cmd, "opening a graph starts the layout")
	assert.True(t, app.GraphView().Ticking())
}

func TestApp_StaleTickIgnored(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)
	app.Update(messages.GraphOpened{Title: "Demo", Graph: sampleGraph()})
	gen := app.GraphView().Surface().Generation()

	_, cmd := app.Update(messages.Tick{Generation: gen + 100})

	assert.Nil(t, cmd)
	assert.True(t, app.GraphView().Ticking())
}

func TestApp_MergedUsesSettings(t *testing.T) {
	settings := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.Set("store.merge_limit", "1"))
	app, err := NewApp(NewPorts(newTestStore(t, "first", "second"), settings))
	require.NoError(t, err)

	_, cmd := app.Update(keyPress("m"))
	require.NotNil(t, cmd)
	opened, ok := cmd().(messages.GraphOpened)

	require.True(t, ok)
	assert.Equal(t, "Merged (latest 1)", opened.Title)
	assert.Len(t, opened.Graph.Nodes, 1)
}

func TestApp_HelpReturnsToPreviousView(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	app.Update(messages.GraphOpened{Title: "Demo", Graph: sampleGraph()})

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "merged")
	assert.Contains(t, view, "zoom in")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewGraph, app.CurrentView())
}

func TestApp_HelpQuit(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	_, cmd := app.Update(keyPress("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_BackToGraphsReloads(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t, "first"), nil))
	require.NoError(t, err)
	app.Update(messages.GraphOpened{Title: "Demo", Graph: sampleGraph()})

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewGraphs})

	assert.Equal(t, messages.ViewGraphs, app.CurrentView())
	require.NotNil(t, cmd)
	assert.IsType(t, messages.GraphsLoaded{}, cmd())
}

func TestApp_BackWithoutStoreQuits(t *testing.T) {
	app, err := NewApp(&Ports{}, WithGraph("Demo", sampleGraph()))
	require.NoError(t, err)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewGraphs})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.Equal(t, boom, app.Err())
	assert.Equal(t, boom, app.GraphsView().Err())
	assert.Contains(t, app.View(), "boom")
}

func TestApp_MouseIgnoredOutsideGraph(t *testing.T) {
	app, err := NewApp(NewPorts(newTestStore(t), nil))
	require.NoError(t, err)

	_, cmd := app.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewGraphs, app.CurrentView())
}
