package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/charsheet/internal/character"
	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

// reservedChars separate fields and records in a .char file.
// The ':' delta separator is also reserved in modifier stat names.
const reservedChars = "|\t\n\r"

// command is one CLI subcommand
type command struct {
	usage   string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(r *Runner, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"new":      {usage: "new <name>", minArgs: 1, maxArgs: 1, run: (*Runner).newCharacter},
	"show":     {usage: "show <file>", minArgs: 1, maxArgs: 1, run: (*Runner).show},
	"list":     {usage: "list", minArgs: 0, maxArgs: 0, run: (*Runner).list},
	"set-attr": {usage: "set-attr <file> <name> <value>", minArgs: 3, maxArgs: 3, run: (*Runner).setAttribute},
	"set-stat": {usage: "set-stat <file> <name> <int>", minArgs: 3, maxArgs: 3, run: (*Runner).setStat},
	"get-attr": {usage: "get-attr <file> <name>", minArgs: 2, maxArgs: 2, run: (*Runner).getAttribute},
	"get-stat": {usage: "get-stat <file> <name>", minArgs: 2, maxArgs: 2, run: (*Runner).getStat},
	"add-mod":  {usage: "add-mod <file> <name> <description> [stat:delta...]", minArgs: 3, maxArgs: -1, run: (*Runner).addModifier},
	"drop-mod": {usage: "drop-mod <file> <name>", minArgs: 2, maxArgs: 2, run: (*Runner).dropModifier},
}

// Usage describes every command
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: charsheet <command> [args]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", commands[name].usage)
	}
	return b.String()
}

// RunnerConfig holds the dependencies of a Runner
type RunnerConfig struct {
	Store  Store
	Out    io.Writer
	Logger logrus.FieldLogger
}

// Runner executes CLI commands against a Store
type Runner struct {
	store Store
	out   io.Writer
	log   logrus.FieldLogger
}

// NewRunner creates a Runner
func NewRunner(cfg *RunnerConfig) *Runner {
	if cfg == nil {
		panic("RunnerConfig cannot be nil")
	}
	if cfg.Store == nil {
		panic("Store cannot be nil")
	}

	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Runner{
		store: cfg.Store,
		out:   out,
		log:   log,
	}
}

// Run executes the command named by args[0]
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return charerr.InvalidArgument("no command given")
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return charerr.InvalidArgumentf("unknown command '%s'", args[0]).
			WithMeta("command", args[0])
	}

	cmdArgs := args[1:]
	if len(cmdArgs) < cmd.minArgs || (cmd.maxArgs >= 0 && len(cmdArgs) > cmd.maxArgs) {
		return charerr.InvalidArgumentf("usage: charsheet %s", cmd.usage).
			WithMeta("command", args[0])
	}

	r.log.WithField("command", args[0]).Debug("Running command")
	return cmd.run(r, ctx, cmdArgs)
}

func (r *Runner) newCharacter(_ context.Context, args []string) error {
	name := args[0]
	if err := validateField("character name", name); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return charerr.InvalidArgumentf("character name '%s' cannot be used as a file name", name)
	}

	exists, err := r.store.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return charerr.AlreadyExistsf("character '%s' already exists", name).
			WithMeta("character", name)
	}

	c := character.New(name)
	path, err := r.store.Save(c, name)
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"character": name,
		"file":      path,
	}).Info("Created character")
	fmt.Fprintln(r.out, path)
	return nil
}

func (r *Runner) show(_ context.Context, args []string) error {
	c, err := r.load(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, c.Encode())
	return err
}

func (r *Runner) list(ctx context.Context, _ []string) error {
	paths, err := r.store.List()
	if err != nil {
		return err
	}

	loaded := make([]*character.Character, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c, err := r.load(path)
			if err != nil {
				return err
			}
			loaded[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, c := range loaded {
		fmt.Fprintf(r.out, "%s\t%s\tattributes=%d stats=%d modifiers=%d\n",
			c.Name(), paths[i], len(c.AttributeNames()), len(c.StatNames()), len(c.Modifiers()))
	}
	return nil
}

func (r *Runner) setAttribute(_ context.Context, args []string) error {
	ref, name, value := args[0], args[1], args[2]
	if err := validateField("attribute name", name); err != nil {
		return err
	}
	if err := validateField("attribute value", value); err != nil {
		return err
	}

	return r.update(ref, func(c *character.Character) error {
		c.AddAttribute(name, value)
		return nil
	})
}

func (r *Runner) setStat(_ context.Context, args []string) error {
	ref, name, raw := args[0], args[1], args[2]
	if err := validateField("stat name", name); err != nil {
		return err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return charerr.InvalidArgumentf("stat value '%s' is not an integer", raw).
			WithMeta("stat", name)
	}

	return r.update(ref, func(c *character.Character) error {
		return c.AddStat(name, value)
	})
}

func (r *Runner) getAttribute(_ context.Context, args []string) error {
	c, err := r.load(args[0])
	if err != nil {
		return err
	}
	value, err := c.Attribute(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, value)
	return nil
}

func (r *Runner) getStat(_ context.Context, args []string) error {
	c, err := r.load(args[0])
	if err != nil {
		return err
	}
	value, err := c.Stat(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, value)
	return nil
}

func (r *Runner) addModifier(_ context.Context, args []string) error {
	ref, name, description := args[0], args[1], args[2]
	if name == "" {
		return charerr.InvalidArgument("modifier name is required")
	}
	if err := validateField("modifier name", name); err != nil {
		return err
	}
	if err := validateField("modifier description", description); err != nil {
		return err
	}

	m := character.NewModifier(name, description)
	for _, raw := range args[3:] {
		stat, rawDelta, found := strings.Cut(raw, ":")
		if !found || stat == "" {
			return charerr.InvalidArgumentf("modifier stat '%s' must look like stat:delta", raw)
		}
		if err := validateField("modifier stat", stat); err != nil {
			return err
		}
		delta, err := strconv.Atoi(rawDelta)
		if err != nil {
			return charerr.InvalidArgumentf("modifier delta '%s' is not an integer", rawDelta).
				WithMeta("stat", stat)
		}
		m.SetDelta(stat, delta)
	}

	return r.update(ref, func(c *character.Character) error {
		return c.AddModifier(m)
	})
}

func (r *Runner) dropModifier(_ context.Context, args []string) error {
	ref, name := args[0], args[1]

	return r.update(ref, func(c *character.Character) error {
		_, err := c.DropModifier(name)
		return err
	})
}

// validateField rejects text the .char format reserves for separators
func validateField(field, value string) error {
	if i := strings.IndexAny(value, reservedChars); i >= 0 {
		return charerr.InvalidArgumentf("%s %q contains reserved character %q", field, value, value[i]).
			WithMeta("field", field)
	}
	return nil
}

// load reads a character and warns when the file never named it
func (r *Runner) load(ref string) (*character.Character, error) {
	c, err := r.store.Load(ref)
	if err != nil {
		return nil, err
	}
	if c.HasPlaceholderName() {
		r.log.WithField("file", ref).Warnf("Character file has no name attribute, using '%s'", character.PlaceholderName)
	}
	return c, nil
}

// update loads a character, applies fn and saves it back to the same file
func (r *Runner) update(ref string, fn func(c *character.Character) error) error {
	c, err := r.load(ref)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}

	path, err := r.store.Save(c, ref)
	if err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"character": c.Name(),
		"file":      path,
	}).Info("Saved character")
	return nil
}
