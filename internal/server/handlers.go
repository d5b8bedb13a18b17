package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/carpick/carpick/internal/facts"
	"github.com/carpick/carpick/internal/quiz"
	"github.com/carpick/carpick/internal/store"
)

type choicePayload struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type roundPayload struct {
	RoundID  string          `json:"round_id"`
	ImageURL string          `json:"image_url"`
	Choices  []choicePayload `json:"choices"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Strict *bool  `json:"strict"`
		Seed   *int64 `json:"seed"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}

	strict := s.cfg.Quiz.StrictScoring
	if req.Strict != nil {
		strict = *req.Strict
	}
	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	g := s.sessions.Create(rng, strict)
	s.appendSessionEvent(r.Context(), g, "started", 0)

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": g.ID(),
		"strict":     strict,
		"started_at": g.Tracker().StartedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	t := g.Tracker()
	history := t.History()
	items := make([]map[string]any, 0, len(history))
	for _, o := range history {
		items = append(items, map[string]any{
			"round_id": o.RoundID,
			"target":   o.Target.Label(),
			"chosen":   o.Chosen.Label(),
			"correct":  o.Correct,
			"at":       o.At.UTC().Format(time.RFC3339),
		})
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id":    t.ID,
		"score":         t.Score,
		"rounds_played": t.RoundsPlayed,
		"accuracy":      t.Accuracy(),
		"history":       items,
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessions.End(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.appendSessionEvent(r.Context(), g, "completed", time.Since(g.Tracker().StartedAt).Seconds())

	t := g.Tracker()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id":    t.ID,
		"score":         t.Score,
		"rounds_played": t.RoundsPlayed,
		"accuracy":      t.Accuracy(),
	})
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	oldRoundID := g.CurrentRoundID()
	round, err := g.NewRound(s.library.Index())
	if err != nil {
		var insufficient *quiz.ErrInsufficientData
		if errors.As(err, &insufficient) {
			http.Error(w, insufficient.Error(), http.StatusConflict)
			return
		}
		s.log.Error("round generation failed", zap.Error(err))
		http.Error(w, "round generation failed", http.StatusInternalServerError)
		return
	}
	s.sessions.TrackRound(g, oldRoundID, round.ID)

	choices := make([]choicePayload, len(round.Choices))
	for i, c := range round.Choices {
		choices[i] = choicePayload{Index: i, Label: c.Label()}
	}
	_ = json.NewEncoder(w).Encode(roundPayload{
		RoundID:  round.ID,
		ImageURL: fmt.Sprintf("/api/rounds/%s/image", round.ID),
		Choices:  choices,
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req struct {
		RoundID     string `json:"round_id"`
		ChoiceIndex *int   `json:"choice_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.RoundID == "" || req.ChoiceIndex == nil {
		http.Error(w, "round_id and choice_index required", http.StatusBadRequest)
		return
	}

	result, err := g.Answer(req.RoundID, *req.ChoiceIndex)
	if err != nil {
		var invalid *quiz.ErrInvalidChoice
		switch {
		case errors.Is(err, ErrRoundExpired):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrChoiceOutOfRange), errors.As(err, &invalid):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			s.log.Error("answer evaluation failed", zap.Error(err))
			http.Error(w, "answer evaluation failed", http.StatusInternalServerError)
		}
		return
	}

	s.appendAnswerEvent(r.Context(), g, req.RoundID, result)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"correct":       result.Correct,
		"answer":        result.Target.Label(),
		"chosen":        result.Chosen.Label(),
		"score":         result.Score,
		"rounds_played": result.Rounds,
		"accuracy":      result.Accuracy,
	})
}

func (s *Server) handleRoundImage(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	g, ok := s.sessions.ByRound(roundID)
	if !ok {
		http.Error(w, "round not found", http.StatusNotFound)
		return
	}
	rec, ok := g.RoundImage(roundID)
	if !ok {
		http.Error(w, "round not found", http.StatusNotFound)
		return
	}

	src := filepath.Join(s.cfg.Paths.DataDir, filepath.FromSlash(rec.ImagePath))
	thumb, err := s.thumbs.Ensure(src)
	if err != nil {
		s.log.Warn("thumbnail generation failed, serving original",
			zap.String("image", rec.ImagePath), zap.Error(err))
		thumb = src
	}
	http.ServeFile(w, r, thumb)
}

func (s *Server) handleFact(w http.ResponseWriter, r *http.Request) {
	if s.facts == nil {
		http.Error(w, "fact generation unavailable", http.StatusServiceUnavailable)
		return
	}

	g, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req struct {
		RoundID string `json:"round_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	rec, ok := g.AnsweredTarget(req.RoundID)
	if !ok {
		http.Error(w, "round not answered", http.StatusConflict)
		return
	}

	fact, err := s.facts.Generate(r.Context(), facts.FactInput{
		Make:  rec.Make,
		Model: rec.Model,
		Year:  rec.Year,
	})
	if err != nil {
		s.log.Warn("fact generation failed", zap.Error(err))
		http.Error(w, "fact generation failed", http.StatusBadGateway)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"car":      rec.Label(),
		"headline": fact.Headline,
		"detail":   fact.Detail,
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	if s.adminToken != "" {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.adminToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	var req struct {
		Force bool `json:"force"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}

	ix, err := s.library.Rebuild(req.Force)
	if err != nil {
		s.log.Error("index rebuild failed", zap.Error(err))
		http.Error(w, "rebuild failed", http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"records": len(ix.Records),
		"misses":  ix.Misses,
		"forced":  req.Force,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ix := s.library.Index()

	// The docs bundle is built out-of-band; its absence is a degraded
	// deployment, not a fatal one.
	status := "ok"
	if ix.Len() == 0 || !s.docsOn {
		status = "degraded"
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"records": ix.Len(),
		"misses":  ix.Misses,
		"docs":    s.docsOn,
		"facts":   s.facts != nil,
	})
}

func (s *Server) appendSessionEvent(ctx context.Context, g *GameSession, action string, durationSecs float64) {
	if s.events == nil {
		return
	}
	t := g.Tracker()
	err := s.events.AppendSession(ctx, store.SessionEventData{
		SessionID:      t.ID,
		Action:         action,
		RoundsPlayed:   t.RoundsPlayed,
		CorrectAnswers: t.Score,
		DurationSecs:   durationSecs,
	})
	if err != nil {
		s.log.Warn("session event not recorded", zap.Error(err))
	}
}

func (s *Server) appendAnswerEvent(ctx context.Context, g *GameSession, roundID string, result AnswerResult) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:  g.ID(),
		RoundID:    roundID,
		ImagePath:  result.Target.ImagePath,
		Make:       result.Target.Make,
		Model:      result.Target.Model,
		Year:       result.Target.Year,
		ChosenPath: result.Chosen.ImagePath,
		Correct:    result.Correct,
	})
	if err != nil {
		s.log.Warn("answer event not recorded", zap.Error(err))
	}
}
