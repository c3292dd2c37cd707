package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ent0n29/speechkit/internal/synth"
	"github.com/ent0n29/speechkit/internal/voices"
)

type sayOptions struct {
	voice  string
	rate   float64
	volume float64
	output string
	width  int
	file   string
	plain  bool
}

func newSayCommand() *cobra.Command {
	var opts sayOptions
	cmd := &cobra.Command{
		Use:     "say [text...]",
		Short:   "Synthesize text to an mp3 file",
		Example: `speechkit say --voice en-GB-SoniaNeural -o hello.mp3 "Hello there"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" && len(args) == 0 {
				return fmt.Errorf("text or --file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			catalog, err := voices.Load(cfg.DefaultVoice, cfg.VoicesFile)
			if err != nil {
				return err
			}
			engine, err := synth.NewEngine(cfg.Engine, synth.EdgeConfig{Binary: cfg.EdgeBinary, Timeout: cfg.SynthTimeout}, log)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rate") {
				opts.rate = cfg.DefaultRate
			}
			if !cmd.Flags().Changed("volume") {
				opts.volume = cfg.DefaultVolume
			}

			text, err := readSayText(opts, args)
			if err != nil {
				return err
			}
			req := synth.Request{
				Text:   text,
				Voice:  catalog.Lookup(opts.voice).ID,
				Rate:   opts.rate,
				Volume: opts.volume,
			}
			_, err = sayToFiles(cmd.Context(), engine, req, opts.output, opts.width, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&opts.voice, "voice", "", "voice id (default from TTS_DEFAULT_VOICE)")
	cmd.Flags().Float64Var(&opts.rate, "rate", 1.0, "speaking rate multiplier, 1.0 is normal")
	cmd.Flags().Float64Var(&opts.volume, "volume", 0.8, "volume multiplier, 1.0 is normal")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "speech.mp3", "output file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read text from a file instead of arguments")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "strip markdown, links and symbols before speaking")
	cmd.Flags().IntVar(&opts.width, "chunk", synth.DefaultChunkRunes, "maximum characters per synthesis call")
	return cmd
}

func readSayText(opts sayOptions, args []string) (string, error) {
	text := strings.Join(args, " ")
	if opts.file != "" {
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return "", err
		}
		text = string(b)
	}
	if opts.plain {
		text = synth.Speakable(text)
	}
	return text, nil
}

// sayToFiles writes one file per chunk of req.Text. A single chunk goes to
// output itself; several become output_001.mp3, output_002.mp3 and so on.
func sayToFiles(ctx context.Context, engine synth.Engine, req synth.Request, output string, width int, w io.Writer) ([]string, error) {
	chunks := synth.Chunk(req.Text, width)
	if len(chunks) == 0 {
		return nil, synth.ErrEmptyText
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	if ext == "" {
		ext = ".mp3"
	}

	written := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		dest := output
		if len(chunks) > 1 {
			dest = fmt.Sprintf("%s_%03d%s", base, i+1, ext)
		}
		part := req
		part.Text = chunk
		if err := engine.Synthesize(ctx, part, dest); err != nil {
			return written, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		info, err := os.Stat(dest)
		if err != nil {
			return written, err
		}
		written = append(written, dest)
		fmt.Fprintf(w, "%s  %s  (%s)\n", dest, humanize.Bytes(uint64(info.Size())), req.Voice)
	}
	return written, nil
}
