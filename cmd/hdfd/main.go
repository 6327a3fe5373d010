package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/brutella/hc/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/cloudkucooland/hdfd"
	"github.com/cloudkucooland/hdfd/config"
	"github.com/cloudkucooland/hdfd/ec"
	"github.com/cloudkucooland/hdfd/identity"
	"github.com/cloudkucooland/hdfd/metrics"
	"github.com/cloudkucooland/hdfd/platform"
	"github.com/cloudkucooland/hdfd/profile"
	"github.com/cloudkucooland/hdfd/thermal"
)

func main() {
	var dir, file string
	var debug bool

	app := cli.App{
		Name:  "hdfd",
		Usage: "fan control for Acer Aspire One class netbooks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Value:       "config",
				Usage:       "configuration directory",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "config",
				Value:       "hdfd.json",
				Usage:       "configuration file",
				Destination: &file,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "log register traffic and HTTP requests",
				Destination: &debug,
			},
		},
		Before: func(c *cli.Context) error {
			if debug {
				log.Debug.Enable()
				ec.SetDebug(true)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			conf, err := config.Load(dir, file)
			if err != nil {
				return err
			}
			return run(conf, debug)
		},
		Commands: []*cli.Command{
			{
				Name:  "probe",
				Usage: "print the firmware identity and the matching profile",
				Action: func(c *cli.Context) error {
					conf, err := config.Load(dir, file)
					if err != nil {
						return err
					}
					id, p, err := identify(conf)
					if err != nil {
						return err
					}
					fmt.Printf("identity: %s\nprofile:  %s\n", id, p)
					return nil
				},
			},
			{
				Name:  "profiles",
				Usage: "list the supported boards in match order",
				Action: func(c *cli.Context) error {
					conf, err := config.Load(dir, file)
					if err != nil {
						conf = config.Default()
					}
					r, err := hdfd.Profiles(conf)
					if err != nil {
						return err
					}
					listProfiles(r)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Info.Println(err)
		os.Exit(1)
	}
}

func identify(conf config.Config) (identity.Identity, profile.Profile, error) {
	id, err := hdfd.Identify(conf)
	if err != nil {
		return id, profile.Profile{}, fmt.Errorf("device not present: %w", err)
	}
	log.Info.Printf("firmware identity: %s", id)

	r, err := hdfd.Profiles(conf)
	if err != nil {
		return id, profile.Profile{}, err
	}
	p, err := r.Match(id)
	if err != nil {
		return id, profile.Profile{}, fmt.Errorf("device not present/unsupported: %w", err)
	}
	return id, p, nil
}

func run(conf config.Config, debug bool) error {
	// nothing is opened for a board we do not know
	_, p, err := identify(conf)
	if err != nil {
		return err
	}

	port, err := hdfd.OpenPort(conf, p)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	ctrl, err := hdfd.NewController(conf, port, p,
		thermal.WithRecorder(metrics.New(reg)),
		thermal.WithHalt(halt(conf.HaltCommand)))
	if err != nil {
		port.Close()
		return err
	}

	hdfd.BootstrapPlatforms(conf, &hdfd.ControllerPlatform{Controller: ctrl, Port: port}, reg, debug)

	// run all the background processes
	platform.Background()

	// wait for signal to shut down
	sigch := make(chan os.Signal, 3)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)

	// loop until signal sent
	sig := <-sigch

	log.Info.Printf("shutdown requested by signal: %s", sig)
	platform.ShutdownAllPlatforms()
	return nil
}

// halt takes the machine down once the critical temperature is reached.
func halt(command []string) func(*thermal.CriticalTemperatureError) {
	return func(e *thermal.CriticalTemperatureError) {
		log.Info.Printf("%s, shutting down the system", e)
		if len(command) > 0 {
			cmd := exec.Command(command[0], command[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				log.Info.Printf("%v: %s", command, err)
			}
		}
		os.Exit(2)
	}
}

func listProfiles(r *profile.Registry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "VENDOR\tPRODUCT\tVERSION\tFAN\tTEMP\tOFF\tAUTO\tMANUAL")
	for _, p := range r.Profiles() {
		manual := "-"
		if m, ok := p.AuxiliaryOff(); ok {
			manual = fmt.Sprintf("0x%02x:0x%02x", m.Register, m.Value)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t0x%02x\t0x%02x\t0x%02x\t0x%02x\t%s\n",
			p.Vendor, p.Product, p.Version, p.FanRegister, p.TemperatureRegister, p.FanOff, p.FanAuto, manual)
	}
	w.Flush()
}
