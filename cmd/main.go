package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/revenant/gldevice"
	"github.com/richinsley/revenant/glfwcontext"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/renderer"
)

func runViewer(opts *options.ViewerOptions, scene *options.Scene) {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	dev, err := gldevice.New()
	if err != nil {
		ctx.Shutdown()
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	r := renderer.NewRenderer(ctx, dev, opts)
	defer r.Shutdown()

	if err := r.InitScene(scene, *opts.Assets); err != nil {
		log.Printf("Failed to initialize scene: %v", err)
		return
	}

	log.Println("Starting interactive render loop...")
	r.Run()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("revenant: textured scene viewer")
		flag.PrintDefaults()
		return
	}

	var scene *options.Scene
	var err error
	if *opts.Scene != "" {
		log.Printf("Loading scene %s", *opts.Scene)
		scene, err = options.LoadScene(*opts.Scene)
	} else {
		scene, err = options.DefaultScene()
	}
	if err != nil {
		log.Fatalf("Error loading scene: %v", err)
	}

	runViewer(opts, scene)
}
