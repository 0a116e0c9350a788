package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunIsReproducible(t *testing.T) {
	conf := TestConfig(t)
	conf.NumNodes = 30
	conf.NumTx = 50
	conf.PGraph = 0.3
	conf.PTxDistribution = 0.1

	r1, err := Run(conf)
	require.NoError(t, err)
	r2, err := Run(conf)
	require.NoError(t, err)

	require.Equal(t, r1.Compliant, r2.Compliant)
	require.Equal(t, r1.Malicious, r2.Malicious)
	require.True(t, r1.Transactions.Equal(r2.Transactions))
	for _, id := range r1.Compliant {
		require.True(t, r1.Consensus[id].Equal(r2.Consensus[id]))
	}
	require.Equal(t, conf.NumNodes, len(r1.Compliant)+len(r1.Malicious))
	require.Equal(t, conf.NumTx, r1.Transactions.Len())
}

func TestFullyConnectedHonestNetworkAgrees(t *testing.T) {
	conf := TestConfig(t)
	conf.NumNodes = 10
	conf.NumTx = 20
	conf.NumRounds = 5
	conf.PGraph = 1
	conf.PMalicious = 0
	conf.PTxDistribution = 1

	res, err := Run(conf)
	require.NoError(t, err)
	require.Len(t, res.Compliant, 10)
	require.Empty(t, res.Malicious)
	require.True(t, res.Agree())
	for _, id := range res.Compliant {
		require.True(t, res.Transactions.Equal(res.Consensus[id]))
	}
	require.Equal(t, 20, res.Largest())
}

func TestInvalidConfig(t *testing.T) {
	conf := TestConfig(t)
	conf.PGraph = 1.5
	_, err := Run(conf)
	require.Error(t, err)

	conf = TestConfig(t)
	conf.NumNodes = 0
	_, err = Run(conf)
	require.Error(t, err)
}
