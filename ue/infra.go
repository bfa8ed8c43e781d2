package ue

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentHostPlaceholder in a module Host means the node named by the test case.
const CurrentHostPlaceholder = "%%current_host%%"

// LogDirPlaceholder in a tracing collect command is replaced by the collection directory.
const LogDirPlaceholder = "%%log_dir%%"

// Tracing holds the commands controlling UE side traces.
type Tracing struct {
	Start   string `yaml:"Start"`
	Stop    string `yaml:"Stop"`
	Collect string `yaml:"Collect"`
}

// Definition describes a UE module in the infrastructure file.
type Definition struct {
	Host              string   `yaml:"Host"`
	InitScript        string   `yaml:"InitScript"`
	TermScript        string   `yaml:"TermScript"`
	AttachScript      string   `yaml:"AttachScript"`
	DetachScript      string   `yaml:"DetachScript"`
	NetworkScript     string   `yaml:"NetworkScript"`
	CheckStatusScript string   `yaml:"CheckStatusScript"`
	DataEnableScript  string   `yaml:"DataEnableScript"`
	DataDisableScript string   `yaml:"DataDisableScript"`
	Interface         string   `yaml:"IF"`
	MTU               int      `yaml:"MTU"`
	CmdPrefix         string   `yaml:"CmdPrefix"`
	Tracing           *Tracing `yaml:"Tracing"`
}

// Infrastructure maps module names to their definitions.
type Infrastructure map[string]Definition

// LoadInfrastructure ...
func LoadInfrastructure(pth string) (Infrastructure, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read infrastructure file (%s): %w", pth, err)
	}

	var infra Infrastructure
	if err := yaml.Unmarshal(content, &infra); err != nil {
		return nil, fmt.Errorf("failed to parse infrastructure file (%s): %w", pth, err)
	}

	for name, def := range infra {
		if def.Tracing != nil && def.Tracing.Collect != "" && !strings.Contains(def.Tracing.Collect, LogDirPlaceholder) {
			return nil, fmt.Errorf("module %s: tracing collect command has no %s", name, LogDirPlaceholder)
		}
	}

	return infra, nil
}

// Names returns the module names in a stable order.
func (i Infrastructure) Names() []string {
	var names []string
	for name := range i {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module is a UE definition bound to a concrete host.
type Module struct {
	Name       string
	Host       string
	Definition Definition
}

// Resolve binds the named module to node, which replaces the current host placeholder.
func (i Infrastructure) Resolve(name, node string) (Module, error) {
	def, ok := i[name]
	if !ok {
		return Module{}, fmt.Errorf("unknown UE module (%s), known modules: %s", name, strings.Join(i.Names(), ", "))
	}

	host := def.Host
	if host == CurrentHostPlaceholder || host == "" {
		host = node
	}

	return Module{Name: name, Host: host, Definition: def}, nil
}
