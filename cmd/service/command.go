package service

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/app/logic/v1/process"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

type Options struct {
	ConfigPath string
	Install    bool
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
	flagSet.BoolVar(&o.Install, "install", true, "apply schema migrations on startup")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "vitaehub api service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	utils.SetupIDWorker(1)

	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	if opts.Install {
		if err := app.Install(); err != nil {
			return err
		}
	}

	process.NewProcess(app).Start()
	serve(app)

	return nil
}
