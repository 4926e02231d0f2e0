// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads session configuration files.
//
// Configuration files are JSON documents checked against the #Config
// definition of the embedded CUE schema, which also supplies default values.
//
package config

import (
	_ "embed"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/db47h/vlsim"
	"github.com/pkg/errors"
)

//go:embed schema.cue
var schema []byte

// Config is a session configuration.
//
type Config struct {
	DelayMode     string `json:"delayMode"`
	ArenaBlock    int    `json:"arenaBlock"`
	ImplicitNets  bool   `json:"implicitNets"`
	ImplicitWidth int    `json:"implicitWidth"`
	RandomSeed    int64  `json:"randomSeed"`
}

// DefaultConfig returns the default configuration.
//
func DefaultConfig() *Config {
	return &Config{
		DelayMode:     "typ",
		ArenaBlock:    vlsim.DefaultArenaBlock,
		ImplicitNets:  true,
		ImplicitWidth: 1,
	}
}

// Load loads the configuration file at path. A missing file yields the
// default configuration.
//
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "failed to read configuration")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Parse parses and validates a JSON configuration document. Missing fields
// take their default value.
//
func Parse(data []byte) (*Config, error) {
	ctx := cuecontext.New()
	s := ctx.CompileBytes(schema)
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration schema")
	}
	def := s.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration schema")
	}
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	}
	v := def.Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, errors.New("invalid configuration: " + details(err))
	}
	var c Config
	if err := v.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &c, nil
}

// details joins all the errors in a CUE error list.
func details(err error) string {
	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Mode returns the configured delay mode.
//
func (c *Config) Mode() (vlsim.DelayMode, error) {
	return vlsim.ParseDelayMode(c.DelayMode)
}
