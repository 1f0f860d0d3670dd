package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"boardquest/internal/engine"
)

func TestPromptHidesAnswer(t *testing.T) {
	q := engine.QuestionCard{Prompt: "2+2?", Options: [3]string{"3", "4", "5"}, Answer: 2}
	env := MustEnvelope(MsgPrompt, Prompt{ID: 7, Kind: PromptTrivia, Question: &q})

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "answer") {
		t.Fatalf("prompt leaks the answer: %s", data)
	}

	var back Envelope
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	var p Prompt
	if err := back.Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 7 || p.Kind != PromptTrivia || p.Question.Options[1] != "4" {
		t.Fatalf("decoded prompt: %+v", p)
	}
}

func TestDecodeErrors(t *testing.T) {
	var a AnswerMsg
	if err := (Envelope{Type: MsgAnswer}).Decode(&a); err == nil {
		t.Error("empty payload should fail")
	}
	if err := (Envelope{Type: MsgAnswer, Payload: []byte(`{"prompt_id": "x"}`)}).Decode(&a); err == nil {
		t.Error("bad payload should fail")
	}
}
