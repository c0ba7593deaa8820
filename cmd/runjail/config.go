package main

import (
	"fmt"
	"os"
	"syscall"

	libseccomp "github.com/elastic/go-seccomp-bpf"
	"gopkg.in/yaml.v3"

	"github.com/ojtools/go-spawn/pkg/seccomp"
)

// policyConfig is the on-disk shape of a syscall policy file:
//
//	default_action: kill
//	allow:
//	  - read
//	  - write
type policyConfig struct {
	DefaultAction string   `yaml:"default_action"`
	Allow         []string `yaml:"allow"`
}

var actionByName = map[string]libseccomp.Action{
	"allow": libseccomp.ActionAllow,
	"errno": libseccomp.ActionErrno,
	"trap":  libseccomp.ActionTrap,
	"trace": libseccomp.ActionTrace,
	"log":   libseccomp.ActionLog,
	"kill":  libseccomp.ActionKillProcess,
}

// loadPolicy reads a policy file and assembles it into a loadable
// filter program
func loadPolicy(path string) (*syscall.SockFprog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pc policyConfig
	if err := yaml.Unmarshal(b, &pc); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, err)
	}
	action, ok := actionByName[pc.DefaultAction]
	if !ok {
		return nil, fmt.Errorf("policy %s: unknown default action %q", path, pc.DefaultAction)
	}
	builder := seccomp.Builder{
		Allow:   pc.Allow,
		Default: action,
	}
	return builder.Build()
}
