package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/config"
	"github.com/nyayasetu/legal-aid-api/databases"
	"github.com/nyayasetu/legal-aid-api/models"
	templates "github.com/nyayasetu/legal-aid-api/templates/html"
)

// Scheduler handles periodic background jobs for the case pipeline
type Scheduler struct {
	cron  *cron.Cron
	Store databases.IncidentStore
	Conf  *config.Config
}

// NewScheduler creates a new scheduler instance
func NewScheduler(store databases.IncidentStore, conf *config.Config) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		Store: store,
		Conf:  conf,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Email the pending-case digest to the duty officer daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.sendPendingDigest)
	if err != nil {
		zap.S().Errorw("failed to register pending digest job", "error", err)
	}

	// Staged reference PDFs are only needed for the duration of one upload
	// call, sweep leftovers hourly
	_, err = s.cron.AddFunc("0 * * * *", s.sweepStagedReferences)
	if err != nil {
		zap.S().Errorw("failed to register reference sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Case pipeline scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Case pipeline scheduler stopped")
}

// sendPendingDigest mails a summary of the cases still awaiting triage
func (s *Scheduler) sendPendingDigest() {
	if s.Conf.DigestEmail == "" || os.Getenv("SENDGRID_API_KEY") == "" {
		zap.S().Debug("Digest email not configured, skipping pending digest")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pending, err := s.Store.List(ctx, models.IncidentFilter{Status: models.StatusPending})
	if err != nil {
		zap.S().Errorw("failed to list pending cases for digest", "error", err)
		return
	}
	if len(pending) == 0 {
		zap.S().Debug("No pending cases, skipping digest")
		return
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("%d case(s) are awaiting triage:\n\n", len(pending)))
	for _, incident := range pending {
		desc := incident.Description
		if len(desc) > 120 {
			desc = desc[:120] + "..."
		}
		body.WriteString(fmt.Sprintf("%s (%s, since %s): %s\n",
			incident.CaseID, incident.Category, incident.CreatedAt.Format("2006-01-02"), desc))
	}

	subject := fmt.Sprintf("Pending case digest: %d case(s) awaiting triage", len(pending))
	htmlContent := templates.RenderGenericEmail(subject, body.String())

	from := mail.NewEmail("NyayaSetu Legal Aid", "no-reply@nyayasetu.in")
	to := mail.NewEmail("Duty Officer", s.Conf.DigestEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send pending digest", "error", err)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return
	}
	zap.S().Infow("Sent pending case digest", "count", len(pending), "to", s.Conf.DigestEmail)
}

// sweepStagedReferences removes reference PDFs left behind by interrupted
// uploads. Anything older than an hour is fair game.
func (s *Scheduler) sweepStagedReferences() {
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "legal-ref-*.pdf"))
	if err != nil {
		zap.S().Errorw("failed to glob staged references", "error", err)
		return
	}

	cutoff := time.Now().Add(-1 * time.Hour)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			zap.S().Warnw("failed to remove staged reference", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		zap.S().Infow("Swept staged reference files", "removed", removed)
	}
}
