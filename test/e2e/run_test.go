// Package e2e assembles compiler output with the system toolchain and runs
// the resulting binaries, comparing process exit codes against the source
// expressions. It needs an amd64 host with a C compiler on PATH.
package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/smallcc/smallcc/internal/codegen/x86_64"
	"github.com/smallcc/smallcc/internal/ir"
	"github.com/smallcc/smallcc/internal/parser"
)

func requireToolchain(t *testing.T) string {
	t.Helper()
	if runtime.GOARCH != "amd64" {
		t.Skipf("host is %s, need amd64", runtime.GOARCH)
	}
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no system C compiler on PATH")
	}
	return cc
}

// compileAndRun builds a binary from the given source and returns its exit
// code.
func compileAndRun(t *testing.T, cc, src string) int {
	t.Helper()
	prog, err := parser.ParseFile(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	asm, err := x86_64.Generate(ir.Generate(prog), x86_64.DefaultTarget())
	if err != nil {
		t.Fatalf("codegen failed: %v", err)
	}

	dir := t.TempDir()
	asmPath := filepath.Join(dir, "prog.s")
	if err := os.WriteFile(asmPath, []byte(asm), 0644); err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(dir, "prog")
	if out, err := exec.Command(cc, asmPath, "-o", binPath).CombinedOutput(); err != nil {
		t.Fatalf("%s failed: %v\n%s\nassembly:\n%s", cc, err, out, asm)
	}

	err = exec.Command(binPath).Run()
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	t.Fatalf("run failed: %v", err)
	return -1
}

func TestCompiledPrograms(t *testing.T) {
	cc := requireToolchain(t)

	// Exit codes are the low byte of the returned value, so negative
	// returns show up modulo 256.
	tests := []struct {
		expr string
		want int
	}{
		{"42", 42},
		{"0", 0},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-5", 251},
		{"~0", 255},
		{"!5", 0},
		{"!0", 1},
		{"100 / 9", 11},
		{"100 % 9", 1},
		{"1 - 2 - 3", 252},
		{"2 < 3", 1},
		{"3 <= 2", 0},
		{"3 > 2", 1},
		{"2 >= 3", 0},
		{"(1 + 1) == 2", 1},
		{"1 != 1", 0},
		{"1 && 0", 0},
		{"1 && 2", 1},
		{"0 || 3", 1},
		{"0 || 0", 0},
		{"1 || 0 && 0", 1},
		{"(3 - 1) * -(-4)", 8},
		{"1 < 2 == 1", 1},
		{"- -12", 12},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			src := fmt.Sprintf("int main(void) { return %s; }", tt.expr)
			got := compileAndRun(t, cc, src)
			if got != tt.want {
				t.Errorf("exit code %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFirstReturnWins(t *testing.T) {
	cc := requireToolchain(t)
	got := compileAndRun(t, cc, "int main(void) { return 7; return 9; }")
	if got != 7 {
		t.Errorf("exit code %d, want 7", got)
	}
}
