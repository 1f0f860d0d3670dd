package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boardquest/internal/config"
	"boardquest/internal/console"
	"boardquest/internal/content"
	"boardquest/internal/engine"
	"boardquest/internal/engine/effects"
	"boardquest/internal/server"
)

//go:embed web/static
var static embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	port := flag.Int("port", cfg.Port, "server port")
	contentPath := flag.String("content", cfg.Content, "content file (YAML or JSON); empty uses the built-in board")
	bots := flag.Int("bots", cfg.Bots, "number of bots")
	difficulty := flag.String("difficulty", cfg.Difficulty, "bot difficulty: easy, medium or hard")
	seed := flag.Int64("seed", cfg.Seed, "random seed; 0 picks one")
	useConsole := flag.Bool("console", false, "play in the terminal instead of serving the browser client")
	name := flag.String("name", "Player", "your name in console mode")
	flag.Parse()

	cfg.Port, cfg.Content, cfg.Bots, cfg.Difficulty, cfg.Seed = *port, *contentPath, *bots, *difficulty, *seed

	c, err := loadContent(cfg.Content)
	if err != nil {
		config.Exitf("content: %v", err)
	}
	for _, cat := range c.Missing() {
		log.Printf("warning: no questions for category %q; landing there counts as correct", cat)
	}
	gameCfg, err := cfg.GameConfig(c.Board)
	if err != nil {
		config.Exitf("config: %v", err)
	}
	if err := gameCfg.Validate(); err != nil {
		config.Exitf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *useConsole {
		if err := playConsole(ctx, c, gameCfg, cfg, *name); err != nil {
			log.Fatalf("game error: %v", err)
		}
		return
	}

	sub, err := fs.Sub(static, "web/static")
	if err != nil {
		config.Exitf("static fs: %v", err)
	}
	srv, err := server.New(server.Options{
		Port:    cfg.Port,
		Static:  sub,
		Content: c,
		Game:    gameCfg,
		Seed:    cfg.Seed,
		Bots:    cfg.Bots,
	})
	if err != nil {
		config.Exitf("server: %v", err)
	}
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

func playConsole(ctx context.Context, c *content.Content, gameCfg engine.GameConfig, cfg config.Config, name string) error {
	rng := engine.NewRand(cfg.Seed)
	gw := console.New(os.Stdin, os.Stdout, rng)

	players := []*engine.Player{engine.NewPlayer(engine.NewPlayerID(), name, engine.Human)}
	for i := 0; i < cfg.Bots; i++ {
		players = append(players, engine.NewPlayer(engine.NewPlayerID(), fmt.Sprintf("Bot %d", i+1), engine.Bot))
	}

	game, err := engine.NewGame(players, gameCfg, engine.Deps{
		Decks:   c.Decks(rng),
		Effects: effects.NewResolver(),
		Gateway: gw,
		Rand:    rng,
		Logger:  log.New(os.Stderr, "", log.LstdFlags),
		Sink:    gw.Notify,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-gw.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	err = game.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
