/*
lyra2sum

Hashes hex encoded inputs with one of the Lyra2RE family of proof of work
chains.  With --check the inputs are 80 byte block headers and each one is
verified against the proof of work rules of --net at --height.  With --bench
it measures how many hashes per second the chain manages.  With no inputs it
reads one hex input per line from stdin.  -i opens an interactive shell.
*/
package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/lyra2/coinparam"
	"github.com/mit-dci/lyra2/config"
	"github.com/mit-dci/lyra2/logging"
)

// nonceOffset is where the nonce sits in a serialized header.
const nonceOffset = 76

// errCheckFailed is returned once every input was processed and at least one
// header failed its proof of work check.
var errCheckFailed = errors.New("proof of work check failed")

type lyra2sum struct {
	conf *config.Config
	out  io.Writer
}

func main() {
	conf, inputs, err := config.Load(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Println(err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.SetLogLevel(conf.LogLevel())
	err = logging.InitLogRotator(filepath.Join(conf.LogDir, config.DefaultLogFilename))
	if err != nil {
		logging.Fatalf("Error opening log file: %v", err)
	}
	defer logging.CloseLogRotator()
	logging.Infof("lyra2sum recipe %s net %s height %d", conf.Chain.Name,
		conf.Params.Name, conf.Height)

	ls := &lyra2sum{conf: conf, out: color.Output}
	switch {
	case conf.Interactive:
		err = ls.shell(context.Background())
	case conf.Bench > 0:
		err = ls.bench(context.Background(), conf.Bench)
	case len(inputs) == 0:
		err = ls.hashLines(os.Stdin)
	default:
		err = ls.hashInputs(inputs)
	}
	if err != nil {
		logging.Fatal(err)
	}
}

// hashInputs runs every input through hashOne.  Bad hex stops the run; a
// failed check is reported at the end.
func (ls *lyra2sum) hashInputs(inputs []string) error {
	failed := false
	for _, input := range inputs {
		ok, err := ls.hashOne(input)
		if err != nil {
			return err
		}
		failed = failed || !ok
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

// hashLines reads one hex input per line.  Blank lines and lines starting
// with # are skipped.
func (ls *lyra2sum) hashLines(r io.Reader) error {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ls.hashInputs(inputs)
}

// hashOne decodes a hex input and either prints its digest or checks it as a
// header.  The bool is false only for a header that failed its check.
func (ls *lyra2sum) hashOne(input string) (bool, error) {
	data, err := hex.DecodeString(input)
	if err != nil {
		return false, fmt.Errorf("input %q: %w", input, err)
	}
	if ls.conf.Check {
		return ls.checkHeader(data, ls.conf.Height), nil
	}

	sum, err := ls.conf.Chain.Sum(data)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(ls.out, "%s %s\n", ls.conf.Chain.Name,
		digest(hex.EncodeToString(sum)))
	return true, nil
}

// checkHeader prints the block hash, the chain used, the proof of work hash,
// the header's difficulty and the verdict for one header.
func (ls *lyra2sum) checkHeader(data []byte, height int32) bool {
	p := ls.conf.Params
	pow, err := p.CheckHeader(data, height)
	if errors.Is(err, coinparam.ErrHeaderSize) ||
		errors.Is(err, coinparam.ErrNoSchedule) {

		fmt.Fprintf(ls.out, "%s %s\n", faint(hex.EncodeToString(data)), red(err))
		return false
	}

	bits, _ := coinparam.HeaderBits(data)
	fmt.Fprintf(ls.out, "%s %s %s diff %.6g ", coinparam.BlockHash(data),
		p.PoWRecipe(height).Name, digest(pow), p.Difficulty(bits))
	if err != nil {
		fmt.Fprintf(ls.out, "%s\n", red(err))
		return false
	}
	fmt.Fprintf(ls.out, "%s\n", green("ok"))
	return true
}

// bench hashes n headers that differ only in their nonce and reports the
// rate.  An interrupt cancels the run.
func (ls *lyra2sum) bench(ctx context.Context, n int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	base := ls.conf.Params.GenesisHeader
	inputs := make([][]byte, n)
	for i := range inputs {
		h := base
		binary.LittleEndian.PutUint32(h[nonceOffset:], uint32(i))
		inputs[i] = h[:]
	}

	start := time.Now()
	if _, err := ls.conf.Chain.SumAll(ctx, inputs, ls.conf.Workers); err != nil {
		return err
	}
	elapsed := time.Since(start)

	rate := float64(n) / elapsed.Seconds()
	logging.Infof("bench %s: %d hashes in %v", ls.conf.Chain.Name, n, elapsed)
	fmt.Fprintf(ls.out, "%s: %d hashes in %v, %s H/s\n",
		header(ls.conf.Chain.Name), n, elapsed.Round(time.Millisecond),
		green(fmt.Sprintf("%.1f", rate)))
	return nil
}
