// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/intcode/translate"
)

var (
	verbose bool
	lang    string
)

// envFlags maps environment settings to the flags they default.
var envFlags = map[string]string{
	"INTCODE_VERBOSE": "verbose",
	"INTCODE_TRACE":   "trace",
	"INTCODE_LANG":    "lang",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "Intcode virtual machine, assembler, and amplifier networks.",
	Long: `Runs Intcode programs, either comma separated images or assembler
sources (.ics), and chains them into amplifier networks.

Settings may also be given in a .env file, or in the environment:
INTCODE_VERBOSE, INTCODE_TRACE and INTCODE_LANG. Flags take precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		err = applyEnv(cmd)
		if err != nil {
			return
		}
		if len(lang) != 0 {
			translate.Use(lang)
		}
		return
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")
}

// applyEnv loads .env, and sets every flag not given on the command line
// from its environment variable.
func applyEnv(cmd *cobra.Command) (err error) {
	err = godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	if err != nil {
		return
	}

	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		flag := cmd.Flags().Lookup(name)
		if !ok || flag == nil || flag.Changed {
			continue
		}
		err = flag.Value.Set(value)
		if err != nil {
			err = fmt.Errorf("%v: %w", env, err)
			return
		}
	}

	return
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
