package game

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"peuchre/internal/ports"
)

// ReservePort asks the kernel for a free TCP port on host and releases it
// for the server to bind.
func ReservePort(host string) (int, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, fmt.Errorf("reserve port: %w", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}

// ExecLauncher runs a euchred binary as a child process with its standard
// streams discarded.
type ExecLauncher struct {
	Binary string
	// Args come before "-p <port>"; the usual value is -m -L /dev/null.
	Args []string
}

var _ ports.Launcher = ExecLauncher{}

func (l ExecLauncher) Launch(ctx context.Context, port int) (ports.Process, error) {
	args := append(append([]string{}, l.Args...), "-p", strconv.Itoa(port))
	cmd := exec.CommandContext(ctx, l.Binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", l.Binary, err)
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	once sync.Once
	err  error
}

func (p *execProcess) Kill() error {
	p.once.Do(func() {
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.err = err
		}
		// the exit status of a killed server is of no interest
		p.cmd.Wait()
	})
	return p.err
}
