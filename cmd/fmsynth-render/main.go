package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patchwire/fmsynth"
	"github.com/patchwire/fmsynth/dot"
	"github.com/patchwire/fmsynth/version"
	"github.com/patchwire/fmsynth/vm"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original patch file is.")
	rawOut := flag.Bool("r", false, "Output the rendered note as .raw file. By default, saves stereo float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Output the rendered note as a 16-bit .wav file.")
	pcm := flag.Bool("c", false, "Convert .raw audio to 16-bit signed PCM.")
	dotOut := flag.Bool("dot", false, "Output the signal flow of the patch as a Graphviz .dot file.")
	note := flag.Int("note", 69, "MIDI key to play.")
	hold := flag.Float64("hold", 1, "Seconds to hold the key down.")
	tail := flag.Float64("tail", 1, "Seconds to render after releasing the key.")
	sampleRate := flag.Int("rate", 44100, "Sample rate in Hz.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*dotOut {
		*wavOut = true
	}
	if *note < 0 || *note > 127 {
		fmt.Fprintf(os.Stderr, "note %d is not a MIDI key\n", *note)
		os.Exit(1)
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				_, err := os.Stdout.Write(contents)
				return err
			}
			dir, name := filepath.Split(filename)
			if *directory != "" {
				dir = *directory
				if err := os.MkdirAll(dir, os.ModePerm); err != nil {
					return fmt.Errorf("could not create output directory %v: %v", dir, err)
				}
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		def, err := fmsynth.ParsePatch(inputBytes)
		if err != nil {
			return err
		}
		if *dotOut {
			var buf bytes.Buffer
			if err := dot.Render(&buf, &def); err != nil {
				return err
			}
			if err := output(".dot", buf.Bytes()); err != nil {
				return fmt.Errorf("error outputting .dot file: %v", err)
			}
		}
		if !*rawOut && !*wavOut {
			return nil
		}
		buffer, err := render(def, *sampleRate, byte(*note), *hold, *tail)
		if err != nil {
			return err
		}
		if *rawOut {
			raw, err := fmsynth.Raw(buffer, *pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %v", err)
			}
		}
		if *wavOut {
			wav, err := fmsynth.Wav(buffer, *sampleRate)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %v", err)
			}
			if err := output(".wav", wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			jsonfiles, err := filepath.Glob(filepath.Join(param, "*.json"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for json files: %v\n", param, err)
				retval = 1
				continue
			}
			ymlfiles, err := filepath.Glob(filepath.Join(param, "*.yml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for yml files: %v\n", param, err)
				retval = 1
				continue
			}
			for _, file := range append(ymlfiles, jsonfiles...) {
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

// render plays one note through a fresh patch: the key is held for hold
// seconds and the release rings for tail seconds.
func render(def fmsynth.PatchDefinition, sampleRate int, key byte, hold, tail float64) ([]float32, error) {
	events := make(chan fmsynth.InputEvent, 2)
	patch, err := vm.NewPatch(def, sampleRate, events)
	if err != nil {
		return nil, err
	}
	holdSamples := 2 * int(hold*float64(sampleRate))
	tailSamples := 2 * int(tail*float64(sampleRate))
	buffer := make([]float32, holdSamples+tailSamples)
	events <- fmsynth.KeyDownEvent(key)
	patch.ReadAudio(buffer[:holdSamples])
	events <- fmsynth.KeyUpEvent(key)
	patch.ReadAudio(buffer[holdSamples:])
	return buffer, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Renders one note of .json/.yml patch files to .wav/.raw, or exports their signal flow.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
