// Package show stores cue lists as YAML documents.
package show

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/logger"
)

// Encode renders the cues of cl, in show order, as YAML.
func Encode(cl *cuelist.CueList) ([]byte, error) {
	doc := document{Name: cl.Name}
	for _, c := range cl.Cues() {
		doc.Cues = append(doc.Cues, fromCue(c))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encoding cue list %s: %w", cl.Name, err)
	}
	return data, nil
}

// Decode builds an idle cue list from YAML produced by Encode.
func Decode(data []byte, clk clock.PassiveClock) (*cuelist.CueList, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding cue list: %w", err)
	}

	cl := cuelist.NewCueList(doc.Name, clk)
	for _, dc := range doc.Cues {
		c, err := dc.toCue()
		if err != nil {
			return nil, err
		}
		if err := cl.AddCue(c); err != nil {
			return nil, err
		}
	}

	logger := logger.GetProjectLogger()
	for _, conflict := range cl.TriggerConflicts() {
		logger.WithFields(logrus.Fields{"trigger": conflict.Trigger.String(), "cue_ids": conflict.CueIDs}).
			Warn("Trigger is defined on more than one cue; only the first can fire")
	}
	return cl, nil
}

// Save writes cl to path, replacing the file only once the new contents are fully written.
func Save(path string, cl *cuelist.CueList) error {
	data, err := Encode(cl)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("saving show: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving show: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving show: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving show: %w", err)
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{"path": path, "cues": cl.Len()}).Info("Saved show")
	return nil
}

// Load reads a show written by Save.
func Load(path string, clk clock.PassiveClock) (*cuelist.CueList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading show: %w", err)
	}
	cl, err := Decode(data, clk)
	if err != nil {
		return nil, fmt.Errorf("loading show %s: %w", path, err)
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{"path": path, "cues": cl.Len()}).Info("Loaded show")
	return cl, nil
}
