package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "wavs-component"
	app.Usage = "Run and replay WAVS component invocations locally"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = CommonFlags()
	return app
}
