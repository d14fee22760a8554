package srp

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TimerPolicyTestSuite struct {
	suite.Suite
	policy timerPolicy
}

func (suite *TimerPolicyTestSuite) SetupTest() {
	suite.policy = timerPolicy{
		baseTimeout:  1 * time.Second,
		growthFactor: 1.5,
		retryCap:     4,
	}
}

func (suite *TimerPolicyTestSuite) TestTimeoutGrowsWithRetries() {
	ceiling := time.Duration(float64(time.Second) * math.Pow(1.5, 4))

	prev := time.Duration(0)
	for retries := 0; retries <= 10; retries++ {
		current := suite.policy.timeout(retries)
		suite.GreaterOrEqual(current, prev)
		suite.LessOrEqual(current, ceiling)
		prev = current
	}
}

func (suite *TimerPolicyTestSuite) TestTimeoutIsCapped() {
	suite.Equal(1*time.Second, suite.policy.timeout(0))
	suite.Equal(1500*time.Millisecond, suite.policy.timeout(1))
	suite.Equal(suite.policy.timeout(4), suite.policy.timeout(5))
	suite.Equal(suite.policy.timeout(4), suite.policy.timeout(100))
}

func (suite *TimerPolicyTestSuite) TestExpired() {
	sentAt := time.Unix(0, 0)

	suite.False(suite.policy.expired(sentAt, 0, sentAt.Add(1*time.Second)))
	suite.True(suite.policy.expired(sentAt, 0, sentAt.Add(1001*time.Millisecond)))

	suite.False(suite.policy.expired(sentAt, 1, sentAt.Add(1200*time.Millisecond)))
	suite.True(suite.policy.expired(sentAt, 1, sentAt.Add(1501*time.Millisecond)))
}

func TestTimerPolicy(t *testing.T) {
	suite.Run(t, new(TimerPolicyTestSuite))
}
