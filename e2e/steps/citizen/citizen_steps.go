package citizen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	RememberUser(alias, userID, walletAddress string)
	User(alias string) (userID, walletAddress string, err error)
	Save(key, value string)
	Saved(key string) string
}

// RegisterSteps registers the account, KYC, transfer, governance, education
// and feature gate steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &citizenSteps{tc: tc}

	ctx.Step(`^"([^"]*)" signs up$`, steps.signUp)
	ctx.Step(`^"([^"]*)" completes KYC$`, steps.completeKYC)
	ctx.Step(`^"([^"]*)" sends ([0-9.]+) (HEZ|PEZ) to "([^"]*)"$`, steps.send)
	ctx.Step(`^"([^"]*)" views their wallet$`, steps.viewWallet)
	ctx.Step(`^"([^"]*)" views their profile$`, steps.viewProfile)
	ctx.Step(`^"([^"]*)" views their trust score$`, steps.viewTrustScore)
	ctx.Step(`^"([^"]*)" votes "([^"]*)" on the first active proposal$`, steps.voteOnFirstProposal)
	ctx.Step(`^"([^"]*)" enrolls in the first course$`, steps.enrollInFirstCourse)
	ctx.Step(`^"([^"]*)" reports (\d+)% progress on that course$`, steps.reportProgress)
	ctx.Step(`^"([^"]*)" checks access to "([^"]*)"$`, steps.checkFeature)
}

type citizenSteps struct {
	tc TestContext
}

func (s *citizenSteps) signUp(ctx context.Context, alias string) error {
	if err := s.tc.POST("/auth/signup", map[string]interface{}{}); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("signup returned %d: %s", status, s.tc.GetLastResponseBody())
	}
	userID, err := s.stringField("user_id")
	if err != nil {
		return err
	}
	wallet, err := s.stringField("wallet_address")
	if err != nil {
		return err
	}
	s.tc.RememberUser(alias, userID, wallet)
	return nil
}

func (s *citizenSteps) completeKYC(ctx context.Context, alias string) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	return s.tc.POST("/kyc/submit/"+userID, map[string]interface{}{
		"full_name":     alias,
		"date_of_birth": "1990-03-21",
		"nationality":   "Kurdish",
		"document_type": "passport",
	})
}

func (s *citizenSteps) send(ctx context.Context, from, amount, token, to string) error {
	userID, _, err := s.tc.User(from)
	if err != nil {
		return err
	}
	_, wallet, err := s.tc.User(to)
	if err != nil {
		return err
	}
	return s.tc.POST("/transactions/"+userID, map[string]interface{}{
		"to_address": wallet,
		"amount":     json.Number(amount),
		"token_type": token,
	})
}

func (s *citizenSteps) viewWallet(ctx context.Context, alias string) error {
	return s.getForUser(alias, "/user/%s/wallet")
}

func (s *citizenSteps) viewProfile(ctx context.Context, alias string) error {
	return s.getForUser(alias, "/user/%s")
}

func (s *citizenSteps) viewTrustScore(ctx context.Context, alias string) error {
	return s.getForUser(alias, "/trust-score/%s")
}

func (s *citizenSteps) voteOnFirstProposal(ctx context.Context, alias, direction string) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	if err := s.tc.GET("/governance/proposals", nil); err != nil {
		return err
	}
	proposalID, err := s.stringField("0.proposal_id")
	if err != nil {
		return err
	}
	return s.tc.POST("/governance/vote/"+userID, map[string]interface{}{
		"proposal_id": proposalID,
		"vote_type":   direction,
	})
}

func (s *citizenSteps) enrollInFirstCourse(ctx context.Context, alias string) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	if err := s.tc.GET("/education/courses", nil); err != nil {
		return err
	}
	courseID, err := s.stringField("0.course_id")
	if err != nil {
		return err
	}
	s.tc.Save("course_id", courseID)
	return s.tc.POST("/education/enroll/"+userID+"?course_id="+url.QueryEscape(courseID), nil)
}

func (s *citizenSteps) reportProgress(ctx context.Context, alias string, progress int) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	return s.tc.POST("/education/progress/"+userID, map[string]interface{}{
		"course_id": s.tc.Saved("course_id"),
		"progress":  progress,
	})
}

func (s *citizenSteps) checkFeature(ctx context.Context, alias, feature string) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	return s.tc.GET("/features/check/"+userID+"?feature="+url.QueryEscape(feature), nil)
}

func (s *citizenSteps) getForUser(alias, pathFmt string) error {
	userID, _, err := s.tc.User(alias)
	if err != nil {
		return err
	}
	return s.tc.GET(fmt.Sprintf(pathFmt, userID), nil)
}

func (s *citizenSteps) stringField(field string) (string, error) {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return str, nil
}
