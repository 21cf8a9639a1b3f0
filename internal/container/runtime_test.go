// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runFunc       func(name string, args []string) ([]byte, error)
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCombined(_ context.Context, name string, args ...string) ([]byte, error) {
	if m.runFunc != nil {
		return m.runFunc(name, args)
	}
	return nil, nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(context.Background(), tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		image   string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name:  "docker image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "pandoc/latex:3.5",
			cmds:  map[string]bool{"docker image inspect pandoc/latex:3.5": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image:   "pandoc/latex:3.5",
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name:  "podman image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "pandoc/latex:3.5",
			cmds:  map[string]bool{"podman image exists pandoc/latex:3.5": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:   "pandoc/latex:3.5",
			cmds:    map[string]bool{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runnableCmds: tt.cmds}
			rt := tt.mkRT(exec)
			err := rt.ImageExists(context.Background(), tt.image)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.image) {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	spec := RunSpec{
		Image:   "pandoc/latex:3.5",
		Mounts:  []Mount{{Source: "/home/me/report", Target: "/data"}, {Source: "/tmp/in", Target: "/in", ReadOnly: true}},
		Workdir: "/data",
		Args:    []string{"final_report.md", "-o", "final_report.pdf"},
	}
	wantArgs := []string{
		"run", "--rm",
		"-v", "/home/me/report:/data",
		"-v", "/tmp/in:/in:ro",
		"-w", "/data",
		"pandoc/latex:3.5",
		"final_report.md", "-o", "final_report.pdf",
	}

	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		bin     string
		runFunc func(string, []string) ([]byte, error)
		wantErr string
	}{
		{
			name: "docker run",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			bin:  "docker",
		},
		{
			name: "podman run",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			bin:  "podman",
		},
		{
			name: "run failure includes output",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			bin:  "docker",
			runFunc: func(string, []string) ([]byte, error) {
				return []byte("pdflatex not found\n"), errors.New("exit status 43")
			},
			wantErr: "pdflatex not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotName string
			var gotArgs []string
			exec := &mockExecutor{runFunc: func(name string, args []string) ([]byte, error) {
				gotName, gotArgs = name, args
				if tt.runFunc != nil {
					return tt.runFunc(name, args)
				}
				return []byte("ok"), nil
			}}
			rt := tt.mkRT(exec)

			_, err := rt.Run(context.Background(), spec)
			if gotName != tt.bin {
				t.Errorf("binary = %q, want %q", gotName, tt.bin)
			}
			if strings.Join(gotArgs, " ") != strings.Join(wantArgs, " ") {
				t.Errorf("args = %q, want %q", gotArgs, wantArgs)
			}
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRunArgsMinimal(t *testing.T) {
	got := runArgs(RunSpec{Image: "img"})
	want := "run --rm img"
	if strings.Join(got, " ") != want {
		t.Errorf("runArgs = %q, want %q", strings.Join(got, " "), want)
	}
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	docker := newDockerRuntime(exec)
	if docker.Name() != "docker" {
		t.Errorf("docker runtime name = %q, want %q", docker.Name(), "docker")
	}
	podman := newPodmanRuntime(exec)
	if podman.Name() != "podman" {
		t.Errorf("podman runtime name = %q, want %q", podman.Name(), "podman")
	}
}
