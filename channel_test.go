package srp

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LossyChannelTestSuite struct {
	suite.Suite
}

func (suite *LossyChannelTestSuite) newChannel(lossProbability float64, seed int64) *lossyChannel {
	return newLossyChannel("test", lossProbability, rand.New(rand.NewSource(seed)), zap.NewNop())
}

func (suite *LossyChannelTestSuite) TestDeliversInOrderWithoutLoss() {
	ch := suite.newChannel(0, 1)
	now := time.Unix(0, 0)

	for seq := 0; seq < 5; seq++ {
		suite.True(ch.transmit(newDataPacket(seq, now)))
	}
	for seq := 0; seq < 5; seq++ {
		p, ok := ch.tryReceive()
		suite.Require().True(ok)
		suite.Equal(seq, p.seq)
		suite.False(p.isAck())
	}
	_, ok := ch.tryReceive()
	suite.False(ok)
}

func (suite *LossyChannelTestSuite) TestDropsEveryUnitAtCertainLoss() {
	ch := suite.newChannel(1, 1)
	now := time.Unix(0, 0)

	for seq := 0; seq < 5; seq++ {
		suite.False(ch.transmit(newDataPacket(seq, now)))
	}
	_, ok := ch.tryReceive()
	suite.False(ok)
}

func (suite *LossyChannelTestSuite) TestTryReceiveNeverBlocksWhenEmpty() {
	ch := suite.newChannel(0, 1)
	p, ok := ch.tryReceive()
	suite.Nil(p)
	suite.False(ok)
}

func (suite *LossyChannelTestSuite) TestSeededLossIsReproducible() {
	first := suite.newChannel(0.5, 7)
	second := suite.newChannel(0.5, 7)
	now := time.Unix(0, 0)

	for seq := 0; seq < 100; seq++ {
		suite.Equal(first.transmit(newDataPacket(seq, now)), second.transmit(newDataPacket(seq, now)))
	}
	suite.Equal(first.queue.len(), second.queue.len())
}

func TestLossyChannel(t *testing.T) {
	suite.Run(t, new(LossyChannelTestSuite))
}
