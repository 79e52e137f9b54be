package feed

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"StockFeed/internal/pipeline"
)

// Publisher writes feed artifacts under a single output directory.
// Successive runs overwrite the same files, so every write goes through a
// temp file plus rename; a feed reader polling mid-run never observes a
// partially written document.
type Publisher struct {
	Dir      string
	IconFile string // optional source path, copied into Dir when present
}

// NewPublisher creates a Publisher rooted at dir.
func NewPublisher(dir, iconFile string) *Publisher {
	return &Publisher{Dir: dir, IconFile: iconFile}
}

// Publish renders and writes feed.atom, feed.rss and index.html, and
// copies the icon when configured.
func (p *Publisher) Publish(res pipeline.Result, meta Meta) error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	atomXML, err := BuildAtom(res, meta)
	if err != nil {
		return fmt.Errorf("render atom: %w", err)
	}
	if err := p.writeFile("feed.atom", atomXML); err != nil {
		return err
	}

	rssXML, err := BuildRSS(res, meta)
	if err != nil {
		return fmt.Errorf("render rss: %w", err)
	}
	if err := p.writeFile("feed.rss", rssXML); err != nil {
		return err
	}

	if err := p.writeFile("index.html", IndexHTML(meta)); err != nil {
		return err
	}

	p.copyIcon(meta)
	return nil
}

func (p *Publisher) writeFile(name, content string) error {
	dst := filepath.Join(p.Dir, name)
	tmp, err := os.CreateTemp(p.Dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// copyIcon deploys the feed icon next to the documents. A missing icon is
// only worth a note, not a failure.
func (p *Publisher) copyIcon(meta Meta) {
	if p.IconFile == "" {
		return
	}
	src, err := os.Open(p.IconFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] icon %s not found, skipping copy", p.IconFile)
		} else {
			log.Printf("[WARN] open icon: %v", err)
		}
		return
	}
	defer src.Close()

	if err := p.writeFromReader(meta.Symbol+".png", src); err != nil {
		log.Printf("[WARN] copy icon: %v", err)
	}
}

func (p *Publisher) writeFromReader(name string, r io.Reader) error {
	tmp, err := os.CreateTemp(p.Dir, name+".tmp*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(p.Dir, name))
}


