// Package driver runs MiniLight's render loop: parse a model file, render
// iterations frame by frame, and save the accumulated image at a doubling
// cadence and on completion or interruption. It is grounded on the
// teacher's pkg/renderer/progressive.go (the progressive accumulate-and-save
// loop) and pkg/renderer/worker_pool.go (the optional row-band parallel
// variant), reduced to MiniLight's single-threaded-by-default model.
package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/hxa7241/minilight/pkg/camera"
	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/image"
	"github.com/hxa7241/minilight/pkg/minilog"
	"github.com/hxa7241/minilight/pkg/modelfile"
	"github.com/hxa7241/minilight/pkg/prng"
	"github.com/hxa7241/minilight/pkg/raytracer"
	"github.com/hxa7241/minilight/pkg/scene"
)

var log = minilog.New("minilight")

// Run parses the model at modelPath, renders it for the iteration count the
// model specifies, and writes "<modelPath>.ppm" at a doubling cadence and on
// completion. workers selects row-band parallelism: 0 or 1 means
// single-threaded, matching the reference driver; any larger value splits
// each frame into that many row bands, each with its own RNG. Run returns
// promptly with the most recently saved frame intact when ctx is cancelled.
// Unless quiet, each frame's progress is reported as a single line,
// "iteration: N", overwritten in place with a carriage return rather than
// logged, since it is not a log record but a running counter.
func Run(ctx context.Context, modelPath string, workers int, quiet bool) error {
	file, err := os.Open(modelPath)
	if err != nil {
		return fmt.Errorf("minilight: opening model: %w", err)
	}

	model, err := modelfile.Parse(file)
	closeErr := file.Close()
	if err != nil {
		return fmt.Errorf("minilight: parsing model: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("minilight: closing model: %w", closeErr)
	}

	log.Notice("Starting MiniLight")

	cam := camera.New(model.CameraPosition, model.CameraDirection, model.CameraAngle)
	img := image.New(model.ImageWidth, model.ImageHeight)
	sc := scene.New(model.SkyEmission, model.GroundReflection, model.Triangles, model.CameraPosition)
	tracer := raytracer.New(sc)

	outputPath := modelPath + ".ppm"
	rng := prng.NewGenerator(1)

	for frame := 1; frame <= model.Iterations; frame++ {
		select {
		case <-ctx.Done():
			reportDone(quiet)
			log.Notice("interrupted")
			return saveImage(img, outputPath, frame-1)
		default:
		}

		renderFrame(cam, tracer, rng, img, workers)
		reportProgress(frame, quiet)

		if isSaveFrame(frame, model.Iterations) {
			if err := saveImage(img, outputPath, frame); err != nil {
				return err
			}
		}
	}

	reportDone(quiet)
	log.Notice("finished")
	return nil
}

// reportProgress overwrites a single "iteration: N" line on stderr with a
// carriage return, per frame. It bypasses the leveled logger: this is a
// running counter, not a log record, and every call must land on the same
// line rather than append one.
func reportProgress(frame int, quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "\riteration: %d", frame)
}

// reportDone terminates the overwritten progress line so subsequent log
// output starts on its own line.
func reportDone(quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintln(os.Stderr)
}

// isSaveFrame reports whether the image should be saved after frame,
// out of iterations total: a power of two, or the final frame.
func isSaveFrame(frame, iterations int) bool {
	return isPowerOfTwo(frame) || frame == iterations
}

// renderFrame renders one frame, sequentially or split into row bands
// across workers goroutines, each driven by its own RNG.
func renderFrame(cam *camera.Camera, tracer *raytracer.RayTracer, rng core.Random, img *image.Image, workers int) {
	if workers <= 1 {
		cam.GetFrame(tracer, rng, img)
		return
	}

	numWorkers := workers
	if numWorkers > runtime.NumCPU()*4 {
		numWorkers = runtime.NumCPU() * 4
	}

	height := img.Height()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		yFrom := w * rowsPerWorker
		yTo := yFrom + rowsPerWorker
		if yFrom >= height {
			break
		}
		if yTo > height {
			yTo = height
		}

		seed := uint64(rng.Real01()*1e9) + uint64(w)
		workerRng := prng.NewGenerator(seed)
		wg.Add(1)
		go func(yFrom, yTo int, workerRng core.Random) {
			defer wg.Done()
			cam.RenderRows(tracer, workerRng, img, yFrom, yTo)
		}(yFrom, yTo, workerRng)
	}
	wg.Wait()
}

func saveImage(img *image.Image, path string, iteration int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("minilight: creating output: %w", err)
	}
	defer out.Close()

	if err := img.Formatted(out, iteration); err != nil {
		return fmt.Errorf("minilight: writing output: %w", err)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
