package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/internal/params"
	"github.com/marben/juliafatou/output"
	"github.com/marben/juliafatou/palette"
	"github.com/marben/juliafatou/render"
)

// limits bounds what a single request may ask for.
type limits struct {
	maxPixels  int
	maxThreads int
}

// webServer creates the http server with the image and websocket endpoints.
func webServer(port int, rs *renderScheduler, lim limits) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           newMux(rs, lim),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}

func newMux(rs *renderScheduler, lim limits) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /juliafatou.png", imageHandler(rs, lim))
	mux.HandleFunc("GET /presets", presetsHandler)
	mux.HandleFunc("/ws", websocketHandler(rs, lim))
	return mux
}

// checkJob converts req into a job the server is willing to render.
func checkJob(req params.Request, lim limits) (juliafatou.Job, error) {
	if req.ColorFile != "" {
		return juliafatou.Job{}, fmt.Errorf("%w: color_file is not accepted", juliafatou.ErrConfig)
	}
	job, err := req.Job()
	if err != nil {
		return juliafatou.Job{}, err
	}
	if job.Style == palette.Config {
		return juliafatou.Job{}, fmt.Errorf("%w: color style %q is not available", juliafatou.ErrConfig, job.Style)
	}
	if lim.maxPixels > 0 && job.Width > lim.maxPixels/job.Height {
		return juliafatou.Job{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", juliafatou.ErrConfig, job.Width, job.Height, lim.maxPixels)
	}
	if lim.maxThreads > 0 && job.Threads > lim.maxThreads {
		job.Threads = lim.maxThreads
	}
	job.Output = ""
	return job, nil
}

func parseThumb(q url.Values) (int, error) {
	if !q.Has("thumb") {
		return 0, nil
	}
	n, err := strconv.Atoi(q.Get("thumb"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: thumb %q: want a positive size", juliafatou.ErrConfig, q.Get("thumb"))
	}
	return n, nil
}

func httpStatus(err error) int {
	if errors.Is(err, juliafatou.ErrConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// imageHandler renders the job described by the query string and returns
// it as PNG.
func imageHandler(p juliafatou.ImageProvider, lim limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req, err := params.FromQuery(q, params.Default())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		thumb, err := parseThumb(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		job, err := checkJob(req, lim)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		img, err := p.GetImage(job)
		if err != nil {
			log.Printf("render %s: %v", r.URL.RawQuery, err)
			http.Error(w, err.Error(), httpStatus(err))
			return
		}

		var buf bytes.Buffer
		if thumb > 0 {
			err = output.EncodeAs(&buf, output.Thumbnail(img, thumb), output.PNG)
		} else {
			err = output.Encode(&buf, img)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("write response: %v", err)
		}
	}
}

func presetsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, n := range juliafatou.PresetNames() {
		p, _ := juliafatou.LookupPreset(n)
		fmt.Fprintf(w, "%s %s\n", p.Name, params.FormatPair(real(p.C), imag(p.C)))
	}
}

// Message types sent over the websocket.
const (
	msgBand  = "band"
	msgDone  = "done"
	msgError = "error"
)

// message is the JSON text frame sent to websocket clients.
type message struct {
	Type     string  `json:"type"`
	Band     int     `json:"band"`
	Top      int     `json:"top"`
	Rows     int     `json:"rows,omitempty"`
	Progress float32 `json:"progress,omitempty"`
	Error    string  `json:"error,omitempty"`
}

type renderResult struct {
	img *juliafatou.RGB
	err error
}

// websocketHandler serves one render per connection. The client sends a
// JSON params.Request; the server answers with a band message per
// finished band, one binary PNG message and a final done message.
func websocketHandler(rs *renderScheduler, lim limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ctx := r.Context()
		req := params.Default()
		if err := wsjson.Read(ctx, c, &req); err != nil {
			log.Printf("ws read request: %v", err)
			c.Close(websocket.StatusUnsupportedData, "bad request")
			return
		}
		job, err := checkJob(req, lim)
		if err != nil {
			_ = wsjson.Write(ctx, c, message{Type: msgError, Error: err.Error()})
			c.Close(websocket.StatusPolicyViolation, "bad request")
			return
		}

		// Sized to the number of bands so workers never block on a slow client.
		bands := make(chan message, len(render.Split(job.Width, job.Height, render.Workers(job.Threads))))
		done := make(chan renderResult, 1)
		go func() {
			img, err := rs.render(ctx, job, func(b render.Band, f float32) {
				bands <- message{Type: msgBand, Band: b.Index, Top: b.Top, Rows: b.Rows, Progress: f}
			})
			close(bands)
			done <- renderResult{img, err}
		}()

		var writeErr error
		for m := range bands {
			if writeErr == nil {
				writeErr = wsjson.Write(ctx, c, m)
			}
		}
		res := <-done
		if writeErr != nil {
			log.Printf("ws write progress: %v", writeErr)
			return
		}
		if res.err != nil {
			log.Printf("ws render: %v", res.err)
			_ = wsjson.Write(ctx, c, message{Type: msgError, Error: res.err.Error()})
			c.Close(websocket.StatusInternalError, "render failed")
			return
		}

		var buf bytes.Buffer
		if err := output.Encode(&buf, res.img); err != nil {
			_ = wsjson.Write(ctx, c, message{Type: msgError, Error: err.Error()})
			c.Close(websocket.StatusInternalError, "encode failed")
			return
		}
		if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
			log.Printf("ws write image: %v", err)
			return
		}
		if err := wsjson.Write(ctx, c, message{Type: msgDone}); err != nil {
			log.Printf("ws write done: %v", err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}
