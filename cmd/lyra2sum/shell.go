package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mit-dci/lyra2/coinparam"
	"github.com/mit-dci/lyra2/config"
	"github.com/mit-dci/lyra2/hashchain"
)

type Command struct {
	Format           string
	Description      string
	ShortDescription string
}

var hashCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("hash"), reqColor("hex")),
	Description:      "Hash each hex input with the current recipe and print the digest.\n",
	ShortDescription: "Hash hex inputs with the current recipe.\n",
}

var checkCommand = &Command{
	Format: fmt.Sprintf("%s%s%s\n", white("check"), reqColor("header"),
		optColor("height")),
	Description: fmt.Sprintf("%s\n%s\n",
		"Check the proof of work of an 80 byte hex header on the current network.",
		"The height picks the hash chain and defaults to the current height."),
	ShortDescription: "Check the proof of work of a block header.\n",
}

var recipeCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("recipe"), optColor("name")),
	Description:      "Show the current hash recipe, or switch to the named one.\n",
	ShortDescription: "Show or switch the hash recipe.\n",
}

var netCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("net"), optColor("name")),
	Description:      "Show the current network and its proof of work schedule, or switch to the named one.\n",
	ShortDescription: "Show or switch the network.\n",
}

var heightCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("height"), optColor("height")),
	Description:      "Show or set the block height used by check, and the chain it selects.\n",
	ShortDescription: "Show or set the block height.\n",
}

var lsCommand = &Command{
	Format:           white("ls\n"),
	Description:      "List the known recipes with their steps, and the known networks.\n",
	ShortDescription: "List recipes and networks.\n",
}

var benchCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("bench"), reqColor("count")),
	Description:      "Hash count headers with the current recipe and report the hash rate.\n",
	ShortDescription: "Benchmark the current recipe.\n",
}

var exitCommand = &Command{
	Format:           white("exit\n"),
	Description:      fmt.Sprintf("Alias: %s\nExit the interactive shell.\n", white("quit")),
	ShortDescription: fmt.Sprintf("Alias: %s\nExit the interactive shell.\n", white("quit")),
}

var helpCommand = &Command{
	Format:           fmt.Sprintf("%s%s\n", white("help"), optColor("command")),
	Description:      "Show information about a given command\n",
	ShortDescription: "Show information about a given command\n",
}

var shellCommands = map[string]*Command{
	"hash":   hashCommand,
	"check":  checkCommand,
	"recipe": recipeCommand,
	"net":    netCommand,
	"height": heightCommand,
	"ls":     lsCommand,
	"bench":  benchCommand,
	"exit":   exitCommand,
	"help":   helpCommand,
}

var shellOrder = []string{"help", "hash", "check", "recipe", "net", "height",
	"ls", "bench", "exit"}

// errExit ends the shell loop.
var errExit = errors.New("user exit")

func (ls *lyra2sum) shell(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt("lyra2sum") + white("# "),
		HistoryFile:  filepath.Join(ls.conf.HomeDir, config.DefaultHistoryFile),
		AutoComplete: ls.newAutoCompleter(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// main shell loop
	for {
		msg, err := rl.Readline()
		if err != nil { // ctrl-c or ctrl-d
			return nil
		}
		msg = strings.TrimSpace(msg)
		if len(msg) == 0 {
			continue
		}

		err = ls.shellparse(ctx, strings.Fields(msg))
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (ls *lyra2sum) newAutoCompleter() readline.AutoCompleter {
	recipes := readline.PcItemDynamic(func(string) []string {
		return hashchain.Names()
	})
	nets := readline.PcItemDynamic(func(string) []string {
		return coinparam.NetNames()
	})

	helpItems := make([]readline.PrefixCompleterInterface, 0, len(shellOrder))
	for _, name := range shellOrder {
		helpItems = append(helpItems, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("help", helpItems...),
		readline.PcItem("hash"),
		readline.PcItem("check"),
		readline.PcItem("recipe", recipes),
		readline.PcItem("net", nets),
		readline.PcItem("height"),
		readline.PcItem("ls"),
		readline.PcItem("bench"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

// shellparse runs one command line.  Command errors are printed and the
// shell carries on; only exit is returned.
func (ls *lyra2sum) shellparse(ctx context.Context, cmdslice []string) error {
	var args []string
	cmd := cmdslice[0]
	if len(cmdslice) > 1 {
		args = cmdslice[1:]
	}
	if cmd == "quit" {
		cmd = "exit"
	}

	c, ok := shellCommands[cmd]
	if !ok {
		fmt.Fprintf(ls.out, "Command not recognized. type help for command list.\n")
		return nil
	}
	if len(args) == 1 && args[0] == "-h" {
		fmt.Fprint(ls.out, c.Format)
		fmt.Fprint(ls.out, c.Description)
		return nil
	}

	var err error
	switch cmd {
	case "exit":
		return errExit
	case "help":
		err = ls.help(args)
	case "hash":
		err = ls.hashCmd(args)
	case "check":
		err = ls.checkCmd(args)
	case "recipe":
		err = ls.recipeCmd(args)
	case "net":
		err = ls.netCmd(args)
	case "height":
		err = ls.heightCmd(args)
	case "ls":
		ls.list()
	case "bench":
		err = ls.benchCmd(ctx, args)
	}
	if err != nil {
		fmt.Fprintf(ls.out, "%s error: %s\n", cmd, red(err))
	}
	return nil
}

func (ls *lyra2sum) help(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(ls.out, "commands:\n")
		for _, name := range shellOrder {
			c := shellCommands[name]
			fmt.Fprintf(ls.out, "%s\t%s", c.Format, c.ShortDescription)
		}
		return nil
	}
	c, ok := shellCommands[args[0]]
	if !ok {
		return fmt.Errorf("no command %q", args[0])
	}
	fmt.Fprint(ls.out, c.Format)
	fmt.Fprint(ls.out, c.Description)
	return nil
}

func (ls *lyra2sum) hashCmd(args []string) error {
	if len(args) == 0 {
		return usage(hashCommand)
	}
	for _, arg := range args {
		data, err := hex.DecodeString(arg)
		if err != nil {
			return fmt.Errorf("input %q: %w", arg, err)
		}
		sum, err := ls.conf.Chain.Sum(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(ls.out, "%s %s\n", ls.conf.Chain.Name,
			digest(hex.EncodeToString(sum)))
	}
	return nil
}

func (ls *lyra2sum) checkCmd(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage(checkCommand)
	}
	data, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("header %q: %w", args[0], err)
	}
	height := ls.conf.Height
	if len(args) == 2 {
		height, err = parseHeight(args[1])
		if err != nil {
			return err
		}
	}
	ls.checkHeader(data, height)
	return nil
}

func (ls *lyra2sum) recipeCmd(args []string) error {
	if len(args) > 0 {
		r, err := hashchain.Lookup(args[0])
		if err != nil {
			return err
		}
		ls.conf.Chain = r
		ls.conf.Recipe = r.Name
	}
	fmt.Fprintf(ls.out, "%s\n", ls.conf.Chain)
	return nil
}

func (ls *lyra2sum) netCmd(args []string) error {
	if len(args) > 0 {
		p, err := coinparam.ByName(args[0])
		if err != nil {
			return fmt.Errorf("%w %q", err, args[0])
		}
		ls.conf.Params = p
		ls.conf.Net = p.Name
	}
	p := ls.conf.Params
	fmt.Fprintf(ls.out, "%s\n", header(p.Name))
	for _, epoch := range p.PoWSchedule {
		fmt.Fprintf(ls.out, "\tfrom %d\t%s\n", epoch.StartHeight,
			epoch.Recipe.Name)
	}
	return nil
}

func (ls *lyra2sum) heightCmd(args []string) error {
	if len(args) > 0 {
		height, err := parseHeight(args[0])
		if err != nil {
			return err
		}
		ls.conf.Height = height
	}
	fmt.Fprintf(ls.out, "height %d uses %s on %s\n", ls.conf.Height,
		ls.conf.Params.PoWRecipe(ls.conf.Height).Name, ls.conf.Params.Name)
	return nil
}

func (ls *lyra2sum) list() {
	fmt.Fprintf(ls.out, "%s\n", header("recipes:"))
	for _, name := range hashchain.Names() {
		r, _ := hashchain.Lookup(name)
		fmt.Fprintf(ls.out, "\t%s\n", r)
	}
	fmt.Fprintf(ls.out, "%s\n", header("networks:"))
	for _, name := range coinparam.NetNames() {
		fmt.Fprintf(ls.out, "\t%s\n", name)
	}
}

func (ls *lyra2sum) benchCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage(benchCommand)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("bad count %q", args[0])
	}
	return ls.bench(ctx, n)
}

func usage(c *Command) error {
	return fmt.Errorf("usage: %s", strings.TrimSpace(c.Format))
}

func parseHeight(s string) (int32, error) {
	h, err := strconv.ParseInt(s, 10, 32)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("bad height %q", s)
	}
	return int32(h), nil
}
