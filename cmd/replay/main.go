// Command replay drives a scripted input session headless through the
// collision world, writes the recording and checks that it replays to the
// same final state.
package main

import (
	"flag"
	"fmt"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/obj"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/replay"
	"github.com/sirupsen/logrus"
)

func main() {
	scriptName := flag.String("script", "strafe_circle", "input script in prefabs/scripts (basename, .tengo optional)")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	levelName := flag.String("level", "courtyard", "arena name in levels/")
	out := flag.String("out", "", "write the recording YAML to this path")
	verify := flag.String("verify", "", "verify an existing recording instead of running a script")
	logLevel := flag.String("log", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := common.NewLogger(*logLevel)

	if *verify != "" {
		rec, err := replay.ReadFile(*verify)
		if err != nil {
			log.Fatal(err)
		}
		if err := replay.Verify(rec); err != nil {
			log.Fatal(err)
		}
		log.WithField("frames", len(rec.Frames)).Info("recording replays")
		printState(rec)
		return
	}

	if *ticks <= 0 {
		log.Fatalf("ticks must be positive, got %d", *ticks)
	}

	arena, err := levels.LoadArena(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	ctrl, err := prefabs.LoadControllerSpec()
	if err != nil {
		log.Fatal(err)
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	src, err := obj.LoadScriptSource(*scriptName)
	if err != nil {
		log.Fatal(err)
	}
	player, err := obj.NewPlayer(ctrl, spec, arena, log)
	if err != nil {
		log.Fatal(err)
	}

	jumps := 0
	for i := 0; i < *ticks; i++ {
		if err := src.Advance(); err != nil {
			log.Fatal(err)
		}
		if rep := player.Update(src, common.TimeStep); rep.Jumped {
			jumps++
		}
	}

	rec := player.Recording()
	if *out != "" {
		if err := replay.WriteFile(*out, rec); err != nil {
			log.Fatal(err)
		}
		log.WithField("path", *out).Info("recording written")
	}
	if err := replay.Verify(rec); err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{
		"script": *scriptName,
		"ticks":  *ticks,
		"jumps":  jumps,
	}).Info("session replays")
	printState(rec)
}

func printState(rec *replay.Recording) {
	st := rec.Final
	fmt.Printf("velocity     %.4f %.4f %.4f\n", st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z())
	fmt.Printf("camera yaw   %.4f\n", st.CameraYaw)
	fmt.Printf("camera pitch %.4f\n", st.CameraPitch)
	fmt.Printf("body yaw     %.4f\n", st.BodyYaw)
}
