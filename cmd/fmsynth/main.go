package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/cmd"
	"github.com/patchwire/fmsynth/player"
	"github.com/patchwire/fmsynth/server"
	"github.com/patchwire/fmsynth/version"
)

func main() {
	addr := flag.String("addr", server.DefaultAddr, "Address to listen on for patch updates.")
	backend := flag.String("backend", cmd.Backends[0], "Audio backend: "+strings.Join(cmd.Backends, " or ")+".")
	midiInput := flag.String("midi-input", "", "Use the first MIDI input whose name starts with this prefix instead of asking.")
	patchFile := flag.String("patch", "", "Patch file (.json or .yml) to load at startup.")
	sampleRate := flag.Int("rate", 44100, "Sample rate in Hz.")
	poll := flag.Duration("poll", player.DefaultPollInterval, "How often a replaced patch checks whether it should stop.")
	verbose := flag.Bool("verbose", false, "Log voice allocation and patch retirement.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	var initial *fmsynth.PatchDefinition
	if *patchFile != "" {
		data, err := os.ReadFile(*patchFile)
		if err != nil {
			log.Fatalf("could not read patch: %v", err)
		}
		def, err := fmsynth.ParsePatch(data)
		if err != nil {
			log.Fatalf("could not parse %v: %v", *patchFile, err)
		}
		initial = &def
	}

	events := make(chan fmsynth.InputEvent, 1024)
	midiCloser, err := cmd.OpenMIDIInput(events, *midiInput)
	if err != nil {
		log.Fatalf("could not open MIDI input: %v", err)
	}
	defer midiCloser.Close()

	audioContext, err := cmd.NewAudioContext(*backend, *sampleRate)
	if err != nil {
		log.Fatalf("could not acquire audio context: %v", err)
	}
	defer audioContext.Close()

	broker := player.NewBroker()
	sink := player.NewSink(broker)
	audioCloser, err := audioContext.Play(sink)
	if err != nil {
		log.Fatalf("could not start audio: %v", err)
	}
	defer audioCloser.Close()

	controller := player.NewController(broker, sink, events, *sampleRate)
	controller.PollInterval = *poll
	controller.Verbose = *verbose
	if initial != nil {
		tag, err := controller.Load(*initial)
		if err != nil {
			log.Fatalf("could not load %v: %v", *patchFile, err)
		}
		log.Printf("loaded patch %d from %v", tag, *patchFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	requests := make(chan fmsynth.ClientRequest)
	srv := server.New(requests)
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, *addr) }()
	go controller.Run(ctx, requests)

	select {
	case err := <-done:
		if err != nil {
			log.Printf("%v", err)
		}
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(3 * time.Second):
		}
	}
	log.Printf("shutting down")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Polyphonic FM synthesizer, played over MIDI and patched over a websocket.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
