package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/pbkm/badminton-split/internal/calculator"
	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/repository"
)

// sessionReq is the JSON body shared by the invoice and booking endpoints.
// Court and shuttlecock are referenced by catalog name; a nil price takes
// the catalog price of the named item.
type sessionReq struct {
	Date             string              `json:"date"`
	Duration         int                 `json:"duration"`
	CourtName        string              `json:"courtName"`
	CourtPrice       *int64              `json:"courtPrice"`
	ShuttlecockName  string              `json:"shuttlecockName"`
	ShuttlecockPrice *int64              `json:"shuttlecockPrice"`
	ShuttlecockCount int                 `json:"shuttlecockCount"`
	PlayerCount      int                 `json:"playerCount"`
	BankAccounts     []model.BankAccount `json:"bankAccounts"`
}

// resolveSession turns a request into calculator input. Unknown names leave
// the selection empty, which the calculator reports as incomplete. Only
// store failures are returned as errors.
func resolveSession(ctx context.Context, store CatalogStore, req sessionReq) (calculator.SessionInput, error) {
	in := calculator.SessionInput{
		PlayDate:         strings.TrimSpace(req.Date),
		DurationHours:    req.Duration,
		ShuttlecockCount: req.ShuttlecockCount,
		PlayerCount:      req.PlayerCount,
	}

	if name := strings.TrimSpace(req.CourtName); name != "" {
		court, err := store.FindCourt(ctx, name)
		switch {
		case err == nil:
			in.Court = court
			in.CourtPrice = court.PricePerHour
		case !errors.Is(err, repository.ErrCourtNotFound):
			return calculator.SessionInput{}, err
		}
	}
	if req.CourtPrice != nil {
		in.CourtPrice = *req.CourtPrice
	}

	if name := strings.TrimSpace(req.ShuttlecockName); name != "" {
		s, err := store.FindShuttlecock(ctx, name)
		switch {
		case err == nil:
			in.Shuttlecock = s
			in.ShuttlecockPrice = s.PricePerPiece
		case !errors.Is(err, repository.ErrShuttlecockNotFound):
			return calculator.SessionInput{}, err
		}
	}
	if req.ShuttlecockPrice != nil {
		in.ShuttlecockPrice = *req.ShuttlecockPrice
	}

	for _, a := range req.BankAccounts {
		a.BankName = strings.TrimSpace(a.BankName)
		a.AccountNumber = strings.TrimSpace(a.AccountNumber)
		a.AccountName = strings.TrimSpace(a.AccountName)
		if a.BankName == "" && a.AccountNumber == "" && a.AccountName == "" {
			continue
		}
		in.BankAccounts = append(in.BankAccounts, a)
	}
	return in, nil
}
