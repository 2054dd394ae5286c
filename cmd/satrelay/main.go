// @title        Sensor Relay API
// @version      1.0
// @description  Caches satellite sensor readings and forwards sensor creation.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	_ "sensor_relay/docs"
	"sensor_relay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
