package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cxmath/complexpr"
)

const help = `Enter an expression to evaluate it, or a command:
/eq A == B    check whether two expressions are numerically equivalent
/tree EXPR    print the parse tree of an expression
/vars         print the current variable bindings
/del NAMES    delete variables (space separated)
/clear        clear all variable bindings
/help         print this help
/exit         exit

Expressions use + - * / ** (or ^), parentheses, and the functions
conj(z), sqrt(z), and root(z, n). A lone i is the imaginary unit.
Free variables are prompted for; values may themselves be expressions,
e.g. 3+4i, -i, or sqrt(2).`

func main() {
	var (
		given    [][2]string
		echo     bool
		trials   int
		seed     int64
		logLevel string
	)
	addGiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.Func("given", "name=value variable definition (any number of times)", addGiven)
	flag.BoolVar(&echo, "echo", false, "print parse trees before results")
	flag.IntVar(&trials, "trials", 0, "equivalence trial count (0 for the default)")
	flag.Int64Var(&seed, "seed", 0, "random seed for equivalence trials (0 for nondeterministic)")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)

	sh := &shell{
		vars:   make(map[string]complexpr.Complex),
		echo:   echo,
		log:    logger,
		in:     bufio.NewScanner(os.Stdin),
		prompt: true,
	}
	if trials > 0 {
		sh.eqOpts = append(sh.eqOpts, complexpr.Trials(trials))
	}
	if seed != 0 {
		sh.eqOpts = append(sh.eqOpts, complexpr.Rand(rand.New(rand.NewSource(seed))))
	}
	for _, d := range given {
		v, err := constValue(d[1])
		if err != nil {
			logger.Fatal().Err(err).Str("name", d[0]).Msg("bad variable definition")
		}
		sh.vars[d[0]] = v
	}

	if flag.NArg() > 0 {
		// One-shot mode: each argument is an expression.
		sh.prompt = false
		for _, arg := range flag.Args() {
			if err := sh.evalLine(arg); err != nil {
				logger.Fatal().Err(err).Str("expr", arg).Msg("evaluation failed")
			}
		}
		return
	}

	fmt.Println("complexpr calculator; type /help for help")
	sh.run()
}

// shell is the interactive loop. It owns the variable bindings and catches
// every error the engine propagates so that the loop never dies.
type shell struct {
	vars   map[string]complexpr.Complex
	echo   bool
	eqOpts []complexpr.EquivOption
	log    zerolog.Logger
	in     *bufio.Scanner
	prompt bool
}

func (sh *shell) run() {
	for {
		if sh.prompt {
			fmt.Print("> ")
		}
		if !sh.in.Scan() {
			return
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if !sh.command(line) {
				return
			}
			continue
		}
		if err := sh.evalLine(line); err != nil {
			fmt.Println("error:", err)
		}
	}
}

// command handles a /-prefixed line. It reports whether the loop should
// continue.
func (sh *shell) command(line string) bool {
	cmd, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		fmt.Println(help)
	case "vars":
		for _, k := range sortedKeys(sh.vars) {
			fmt.Printf("%s = %v\n", k, sh.vars[k])
		}
	case "del":
		for _, k := range strings.Fields(rest) {
			delete(sh.vars, k)
		}
	case "clear":
		sh.vars = make(map[string]complexpr.Complex)
	case "tree":
		e, err := complexpr.Parse(rest)
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		fmt.Println(e)
	case "eq":
		lhs, rhs, ok := strings.Cut(rest, "==")
		if !ok {
			fmt.Println(`usage: /eq A == B`)
			break
		}
		sh.checkEq(strings.TrimSpace(lhs), strings.TrimSpace(rhs))
	default:
		fmt.Println("unknown command; type /help for help")
	}
	return true
}

func (sh *shell) evalLine(src string) error {
	e, err := complexpr.Parse(src)
	if err != nil {
		return err
	}
	if sh.echo {
		fmt.Printf("%v : ", e)
	}
	env, err := sh.environment(e.Vars())
	if err != nil {
		return err
	}
	r, err := e.Eval(env)
	if err != nil {
		return err
	}
	fmt.Println(r)
	return nil
}

func (sh *shell) checkEq(lhs, rhs string) {
	a, err := complexpr.Parse(lhs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	b, err := complexpr.Parse(rhs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	eq, err := complexpr.Equivalent(a, b, sh.eqOpts...)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if eq {
		fmt.Println("equivalent (within tolerance on every trial)")
	} else {
		fmt.Println("not equivalent")
	}
}

// environment collects one value per free variable, prompting for any that
// are not already bound.
func (sh *shell) environment(names []string) (map[string]complexpr.Complex, error) {
	env := make(map[string]complexpr.Complex, len(names))
	for _, k := range names {
		if v, ok := sh.vars[k]; ok {
			env[k] = v
			continue
		}
		if !sh.prompt {
			return nil, fmt.Errorf("no value for %q; use -given %s=value", k, k)
		}
		v, err := sh.ask(k)
		if err != nil {
			return nil, err
		}
		sh.vars[k] = v
		env[k] = v
	}
	return env, nil
}

func (sh *shell) ask(name string) (complexpr.Complex, error) {
	for {
		fmt.Printf("%s = ", name)
		if !sh.in.Scan() {
			return complexpr.Complex{}, fmt.Errorf("no value for %q", name)
		}
		v, err := constValue(sh.in.Text())
		if err == nil {
			return v, nil
		}
		sh.log.Debug().Err(err).Str("name", name).Msg("rejected value")
		fmt.Println("error:", err)
	}
}

// constValue evaluates a variable-free expression, which covers every value
// spelling the shell accepts: 3+4i, -2-3i, i, -i, 5, sqrt(2), and so on.
func constValue(src string) (complexpr.Complex, error) {
	e, err := complexpr.Parse(src)
	if err != nil {
		return complexpr.Complex{}, err
	}
	if vars := e.Vars(); len(vars) > 0 {
		return complexpr.Complex{}, fmt.Errorf("value must not use variables (found %q)", vars[0])
	}
	return e.Eval(nil)
}

func sortedKeys(m map[string]complexpr.Complex) []string {
	v := make([]string, 0, len(m))
	for k := range m {
		v = append(v, k)
	}
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
	return v
}
