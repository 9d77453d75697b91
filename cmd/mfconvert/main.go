package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/engine"
	"mediaforge/internal/media"
)

func main() {
	format := flag.String("format", "", "target format (required), e.g. mp3, jpeg, mp4")
	codec := flag.String("codec", "", "audio or video codec")
	bitrate := flag.String("bitrate", "", "target bitrate, e.g. 192k")
	sampleRate := flag.Int("sample-rate", 0, "audio sample rate in Hz")
	channels := flag.Int("channels", 0, "audio channel count")
	resolution := flag.String("resolution", "", "video resolution, e.g. 1280x720")
	fps := flag.Int("fps", 0, "video frame rate")
	preset := flag.String("preset", "", "video encoder preset")
	crf := flag.Int("crf", -1, "video constant rate factor (-1 = unset)")
	quality := flag.Int("quality", -1, "image quality (-1 = unset)")
	compression := flag.Int("compression-level", -1, "image compression level (-1 = unset)")
	outDir := flag.String("out", "", "output directory (default: next to each input)")
	workers := flag.Int("workers", 2, "parallel conversion limit")
	flag.Parse()

	if *format == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mfconvert -format <fmt> [options] <file>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts, err := buildOptions(*format, *codec, *bitrate, *resolution, *preset,
		*sampleRate, *channels, *fps, *crf, *quality, *compression)
	if err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	inputs := make([]convert.Input, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		inputs = append(inputs, convert.Input{Name: filepath.Base(path), Data: data})
	}

	cfg := config.Load()
	engines := engine.NewManager(func() engine.Engine {
		return engine.NewFFmpeg(engine.FFmpegConfig{Binary: cfg.FFmpegPath, WorkDir: cfg.WorkDir})
	})
	defer engines.Terminate()
	conv := convert.New(engines)

	result := conv.ConvertAll(context.Background(), inputs, opts, *workers)

	for _, item := range result.Items {
		dest := item.ConvertedName
		if *outDir != "" {
			dest = filepath.Join(*outDir, item.ConvertedName)
		}
		if err := os.WriteFile(dest, item.Data, 0o644); err != nil {
			log.Fatalf("write %s: %v", dest, err)
		}
		fmt.Printf("%s -> %s (%d bytes)\n", item.OriginalName, dest, item.Size)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "%s: %v\n", f.Name, f.Err)
	}
	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}

func buildOptions(format, codec, bitrate, resolution, preset string,
	sampleRate, channels, fps, crf, quality, compression int) (convert.Options, error) {
	mt, err := media.TypeOf(format)
	if err != nil {
		return nil, err
	}
	switch mt {
	case media.TypeAudio:
		return convert.AudioOptions{
			Format:     format,
			Codec:      codec,
			Bitrate:    bitrate,
			SampleRate: sampleRate,
			Channels:   channels,
		}, nil
	case media.TypeImage:
		return convert.ImageOptions{
			Format:           format,
			Quality:          intPtr(quality),
			CompressionLevel: intPtr(compression),
		}, nil
	default:
		return convert.VideoOptions{
			Format:     format,
			Resolution: resolution,
			Bitrate:    bitrate,
			Codec:      codec,
			FPS:        fps,
			Preset:     preset,
			CRF:        intPtr(crf),
		}, nil
	}
}

func intPtr(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
