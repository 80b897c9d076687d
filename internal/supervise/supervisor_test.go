package supervise

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/platform"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test server script needs sh")
	}
}

// fakeServer scripts a server that prints the ready line, then blocks on
// stdin until the supervisor's scheduled stop arrives.
const fakeServer = `echo '[Server thread/INFO]: Done (1.234s)! For help, type "help"'
read cmd
if [ "$cmd" = "stop" ]; then exit 0; fi
exit 7`

func TestFirstBootStopsServerAfterReadySignal(t *testing.T) {
	requireShell(t)

	s := New(nil)
	s.stopDelay = 20 * time.Millisecond

	events := make(chan Event, 16)
	var collected []Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			collected = append(collected, ev)
		}
	}()

	outcome := s.Run(context.Background(), RunSpec{
		Dir:       t.TempDir(),
		FirstBoot: true,
		Command:   []string{"sh", "-c", fakeServer},
		Events:    events,
	})
	<-done

	assert.Equal(t, platform.Completed(0), outcome, "server must receive exactly 'stop'")
	require.NotEmpty(t, collected)
	assert.Equal(t, Ready, collected[0].Class)
}

func TestStallLineGetsKeystroke(t *testing.T) {
	requireShell(t)

	// The script hangs on read until the injected newline arrives.
	script := `echo '[Server thread/INFO]: Flushing Chunk IO'
read unblock
exit 0`

	s := New(nil)
	outcome := s.Run(context.Background(), RunSpec{
		Dir:     t.TempDir(),
		Command: []string{"sh", "-c", script},
	})
	assert.True(t, outcome.Success(), "keystroke injection must unblock the stalled read: %s", outcome.Reason())
}

func TestExitCodeIsSurfaced(t *testing.T) {
	requireShell(t)

	s := New(nil)
	outcome := s.Run(context.Background(), RunSpec{
		Dir:     t.TempDir(),
		Command: []string{"sh", "-c", "exit 3"},
	})
	assert.Equal(t, platform.StateCompleted, outcome.State)
	assert.Equal(t, 3, outcome.ExitCode)
	assert.False(t, outcome.Success())
}

func TestSpawnFailureResolvesToOutcome(t *testing.T) {
	s := New(nil)
	outcome := s.Run(context.Background(), RunSpec{
		Dir:     t.TempDir(),
		Command: []string{"/does/not/exist/java"},
	})
	assert.Equal(t, platform.StateFailed, outcome.State)
	assert.Error(t, outcome.Err)
}

func TestEventsChannelClosesOnExit(t *testing.T) {
	requireShell(t)

	events := make(chan Event, 16)
	s := New(nil)
	_ = s.Run(context.Background(), RunSpec{
		Dir:     t.TempDir(),
		Command: []string{"sh", "-c", "echo one; echo two; exit 0"},
		Events:  events,
	})

	var lines []string
	for ev := range events { // terminates only if Run closed the channel
		lines = append(lines, ev.Line)
	}
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestLaunchCommandPerKind(t *testing.T) {
	requireShell(t)

	cmd := launchCommand(RunSpec{Kind: mc.Paper, JavaHome: "/opt/java"})
	assert.Equal(t, []string{"/opt/java/bin/java", "-jar", "server.jar", "nogui"}, cmd)

	cmd = launchCommand(RunSpec{Kind: mc.Vanilla})
	assert.Equal(t, []string{"java", "-jar", "server.jar", "nogui"}, cmd)

	cmd = launchCommand(RunSpec{Kind: mc.Forge})
	assert.Equal(t, []string{"sh", "run.sh"}, cmd)
}
