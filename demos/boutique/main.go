// Boutique runs the bridal collection showcase: a glass-blended slide
// carousel over a drifting gold particle field, with a detail overlay and
// WhatsApp inquiries.
//
// Settings come from flags, an optional config file (--config) and LUMINA_*
// environment variables, in that order of precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/phanxgames/lumina"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const windowTitle = "Abida Dada — Collection"

type settings struct {
	Catalog   string
	Images    string
	Watch     bool
	Pick      bool
	Debug     bool
	Perlin    bool
	Seed      uint64
	Particles int
	Phone     string
	Script    string
	Width     int
	Height    int
}

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		log.Fatalf("boutique: %v", err)
	}
}

// newRootCmd builds the command; runFn receives the merged settings.
func newRootCmd(runFn func(settings) error) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "boutique",
		Short:        "Bridal collection showcase",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			var set settings
			if err := v.Unmarshal(&set); err != nil {
				return fmt.Errorf("decode settings: %w", err)
			}
			return runFn(set)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	f.String("catalog", "", "catalog JSON file; the built-in collection when empty")
	f.String("images", "", "directory the catalog's image paths resolve against")
	f.Bool("watch", false, "reload the showcase when the catalog file changes")
	f.Bool("pick", false, "choose the catalog file with a native dialog")
	f.Bool("debug", false, "log frame timings and state changes")
	f.Bool("perlin", false, "drive particles with a Perlin flow field")
	f.Uint64("seed", 1, "particle field seed")
	f.Int("particles", lumina.DefaultFieldConfig().Count, "particle count")
	f.String("phone", lumina.DefaultInquiryPhone, "WhatsApp number for inquiries")
	f.String("script", "", "JSON test script to run, exiting when it finishes")
	f.Int("width", 1280, "window width")
	f.Int("height", 800, "window height")

	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		log.Fatalf("boutique: bind flags: %v", err)
	}
	return cmd
}

func run(set settings) error {
	if set.Pick {
		path, err := pickCatalog()
		if err != nil {
			return err
		}
		if path != "" {
			set.Catalog = path
		}
	}

	fonts, err := lumina.DefaultFonts()
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	a := &app{set: set, fonts: fonts, loader: newLoader(set.Images)}
	if set.Script != "" {
		data, err := os.ReadFile(set.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if a.script, err = lumina.LoadTestScript(data); err != nil {
			return err
		}
	}

	items, err := loadItems(set.Catalog)
	if err != nil {
		return err
	}
	a.build(items)
	defer a.dispose()

	if set.Watch && set.Catalog != "" {
		if a.watch, err = watchCatalog(set.Catalog); err != nil {
			return err
		}
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(set.Width, set.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// pickCatalog asks for a catalog file. Cancelling returns "".
func pickCatalog() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open Catalog"),
		zenity.FileFilters{{
			Name:     "Catalog",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("pick catalog: %w", err)
	}
	return path, nil
}

func loadItems(path string) ([]lumina.Item, error) {
	if path == "" {
		return lumina.DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return lumina.LoadCatalog(data)
}

// newLoader reads images from dir, painting a placeholder for any that are
// missing. Without a dir every slide gets a placeholder.
func newLoader(dir string) lumina.ImageLoader {
	gen := lumina.GeneratedLoader{Width: 900, Height: 1200}
	if dir == "" {
		return gen
	}
	files := lumina.NewFileLoader(os.DirFS(dir))
	return lumina.ImageLoaderFunc(func(ctx context.Context, ref string) (lumina.Texture, error) {
		tex, err := files.LoadImage(ctx, ref)
		if err == nil {
			return tex, nil
		}
		if ctx.Err() != nil {
			return lumina.Texture{}, ctx.Err()
		}
		log.Printf("boutique: %v; using placeholder", err)
		return gen.LoadImage(ctx, ref)
	})
}

// app hosts the showcase and swaps it out when the catalog changes.
type app struct {
	set      settings
	fonts    *lumina.Fonts
	loader   lumina.ImageLoader
	script   *lumina.TestRunner
	watch    *catalogWatcher
	showcase *lumina.Showcase
	cancel   context.CancelFunc
}

func (a *app) build(items []lumina.Item) {
	cfg := lumina.DefaultShowcaseConfig()
	cfg.InquiryPhone = a.set.Phone
	cfg.Field.Seed = a.set.Seed
	if a.set.Particles > 0 {
		cfg.Field.Count = a.set.Particles
	}
	if a.set.Perlin {
		cfg.Field.Flow = lumina.NewPerlinFlow(cfg.Field.FlowScale, int64(a.set.Seed))
	}

	s := lumina.NewShowcase(items, cfg, lumina.CarouselCallbacks{
		OnReady: func(total int) {
			log.Printf("boutique: %d of %d pieces ready", total, len(items))
		},
		OnWarning: func(err error) {
			log.Printf("boutique: %v", err)
		},
	})
	s.SetFonts(a.fonts)
	s.SetDebugMode(a.set.Debug)
	s.OnInquiry = func(url string, it lumina.Item) {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("boutique: open inquiry for %q: %v", it.Title, err)
		}
	}
	if a.script != nil {
		s.SetTestRunner(a.script)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.LoadAsync(ctx, a.loader)
	a.showcase, a.cancel = s, cancel
}

func (a *app) dispose() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.showcase != nil {
		a.showcase.Dispose()
	}
	if a.watch != nil {
		a.watch.Close()
	}
}

// reload rebuilds the showcase from the catalog file. A bad catalog keeps
// the current showcase running.
func (a *app) reload() {
	items, err := loadItems(a.set.Catalog)
	if err != nil {
		log.Printf("boutique: reload: %v", err)
		return
	}
	a.cancel()
	a.showcase.Dispose()
	a.build(items)
	log.Printf("boutique: reloaded %s", a.set.Catalog)
}

func (a *app) Update() error {
	if a.watch != nil {
		select {
		case <-a.watch.Changes():
			a.reload()
		default:
		}
	}
	if err := a.showcase.Update(); err != nil {
		return err
	}
	if a.script != nil && a.script.Done() {
		return ebiten.Termination
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.showcase.Draw(screen)
}

func (a *app) Layout(w, h int) (int, int) {
	return a.showcase.Layout(w, h)
}
