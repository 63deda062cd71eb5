package pipeline_test

import (
	"testing"

	"talfront/internal/pipeline"
)

func TestChannelSink(t *testing.T) {
	ch := make(chan pipeline.Event, 1)
	pipeline.Emit(pipeline.ChannelSink{Ch: ch}, pipeline.Event{File: "a.tal", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	got := <-ch
	if got.File != "a.tal" || got.Stage.Label() != "parsing" {
		t.Fatalf("unexpected event %+v", got)
	}
	pipeline.Emit(nil, pipeline.Event{})
	pipeline.ChannelSink{}.OnEvent(pipeline.Event{})
}

func TestStageProgressOrder(t *testing.T) {
	stages := []pipeline.Stage{pipeline.StageRead, pipeline.StageParse, pipeline.StageTranspile, pipeline.StageWrite}
	prev := -1.0
	for _, s := range stages {
		if p := s.Progress(); p <= prev || p >= 1 {
			t.Fatalf("stage %s progress %v out of order", s, p)
		} else {
			prev = p
		}
	}
}
