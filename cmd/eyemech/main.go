package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/xinwenxu/eyemech/controller"
)

func main() {
	var port, configPath string
	var list, demo bool
	flag.StringVar(&port, "port", "", "serial port of the eye mechanism (default: $EYEMECH_PORT or first available port)")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.BoolVar(&list, "list", false, "list available serial ports and exit")
	flag.BoolVar(&demo, "demo", false, "run a short gaze/blink demo and exit")
	flag.Parse()

	if list {
		runList()
		return
	}

	c := connect(port, configPath)
	defer c.Close()

	if demo {
		runDemo(c)
		return
	}

	runCLI(c)
}

func connect(port, configPath string) *controller.Controller {
	var c *controller.Controller
	var err error

	switch {
	case configPath != "":
		var cfg controller.Config
		cfg, err = controller.LoadConfig(configPath)
		if err == nil {
			c, err = controller.New(cfg)
		}
	case port != "":
		c, err = controller.New(controller.Config{Port: port})
	default:
		c, err = controller.NewFromEnv()
	}
	if err != nil {
		panic(err)
	}

	return c
}

func runList() {
	ports, err := controller.Ports()
	if err != nil {
		panic(err)
	}
	for _, p := range ports {
		fmt.Println(p)
	}
}

func runCLI(c *controller.Controller) {
	err := c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}

// runDemo sweeps the gaze around the edge of its range, works the lids, and
// blinks, with pauses so the motion is visible.
func runDemo(c *controller.Controller) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(c.MoveEye(0, 0))
	time.Sleep(500 * time.Millisecond)

	for i := 0; i <= 36; i++ {
		angle := float64(i) * 10 * math.Pi / 180
		must(c.MoveEye(50*math.Cos(angle), 50*math.Sin(angle)))
		time.Sleep(50 * time.Millisecond)
	}

	must(c.MoveEye(0, 0))
	time.Sleep(500 * time.Millisecond)

	must(c.ControlLid(-3))
	time.Sleep(500 * time.Millisecond)
	must(c.ControlLid(3))
	time.Sleep(500 * time.Millisecond)

	must(c.Blink())
	time.Sleep(time.Second)
}
