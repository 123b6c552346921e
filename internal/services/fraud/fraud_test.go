package fraud

import (
	"strings"
	"testing"

	"CloudLab/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionsCSV(t *testing.T) {
	in := "Amount,hour,merchant_category,card_present,is_fraud\n" +
		"12.50,9,Grocery,1,0\n" +
		"980.00,3,electronics,false,yes\n"

	txs, err := ParseTransactionsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, 12.5, txs[0].Amount)
	assert.Equal(t, "grocery", txs[0].MerchantCategory)
	assert.True(t, txs[0].CardPresent)
	require.NotNil(t, txs[1].IsFraud)
	assert.True(t, *txs[1].IsFraud)
	assert.False(t, txs[1].CardPresent)
}

func TestParseTransactionsCSV_Unlabeled(t *testing.T) {
	in := "merchant_category,amount,card_present,hour\nfuel,40,1,7\ntravel,310,0,2\n"
	txs, err := ParseTransactionsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Nil(t, txs[0].IsFraud)
	assert.Equal(t, 7, txs[0].Hour)
}

func TestParseTransactionsCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		row    int
		column string
	}{
		{"empty", "", 0, ""},
		{"header only", "amount,hour,merchant_category,card_present\n", 0, ""},
		{"missing column", "amount,hour,card_present\n1,2,1\n", 0, "merchant_category"},
		{"bad amount", "amount,hour,merchant_category,card_present\nabc,2,fuel,1\n", 2, "amount"},
		{"nan amount", "amount,hour,merchant_category,card_present\n1,2,fuel,1\nNaN,4,travel,0\n", 3, "amount"},
		{"inf amount", "amount,hour,merchant_category,card_present\n1,2,fuel,1\nInf,5,travel,0\n", 3, "amount"},
		{"overflow amount", "amount,hour,merchant_category,card_present\n1e999,5,travel,0\n", 2, "amount"},
		{"single row", "amount,hour,merchant_category,card_present\n40,7,fuel,1\n", 0, ""},
		{"negative amount", "amount,hour,merchant_category,card_present\n-4,2,fuel,1\n", 2, "amount"},
		{"bad hour", "amount,hour,merchant_category,card_present\n1,2,fuel,1\n1,24,fuel,1\n", 3, "hour"},
		{"bad bool", "amount,hour,merchant_category,card_present\n1,2,fuel,maybe\n", 2, "card_present"},
		{"bad label", "amount,hour,merchant_category,card_present,is_fraud\n1,2,fuel,1,\n", 2, "is_fraud"},
		{"ragged row", "amount,hour,merchant_category,card_present\n1,2\n", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransactionsCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidUpload)

			var ue *models.UploadError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.row, ue.Row)
			assert.Equal(t, tt.column, ue.Column)
		})
	}
}

func TestGenerateTransactions(t *testing.T) {
	a := GenerateTransactions(500, 3)
	assert.Equal(t, a, GenerateTransactions(500, 3))

	var frauds int
	for _, tx := range a {
		require.NotNil(t, tx.IsFraud)
		assert.Contains(t, Categories, tx.MerchantCategory)
		assert.GreaterOrEqual(t, tx.Amount, 0.0)
		if *tx.IsFraud {
			frauds++
			assert.False(t, tx.CardPresent)
			assert.Less(t, tx.Hour, 6)
		}
	}
	assert.Greater(t, frauds, 0)
	assert.Nil(t, GenerateTransactions(0, 1))
}

func TestAnalyze_Labeled(t *testing.T) {
	txs := GenerateTransactions(1000, 11)
	rep, err := Analyze(txs, DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Equal(t, 1000, rep.Rows)
	assert.True(t, rep.Labeled)
	require.NotNil(t, rep.Supervised)

	c := rep.Supervised.Confusion
	assert.Equal(t, 1000, c.TruePositive+c.FalsePositive+c.TrueNegative+c.FalseNegative)
	assert.Equal(t, rep.AnomalyCount, c.TruePositive+c.FalsePositive)
	assert.LessOrEqual(t, rep.AnomalyCount, 60)
	assert.LessOrEqual(t, rep.ScoreP50, rep.ScoreP95)
	assert.LessOrEqual(t, len(rep.TopAnomalies), 10)
	for i := 1; i < len(rep.TopAnomalies); i++ {
		assert.GreaterOrEqual(t, rep.TopAnomalies[i-1].Score, rep.TopAnomalies[i].Score)
	}
}

func TestAnalyze_Unlabeled(t *testing.T) {
	txs := GenerateTransactions(300, 5)
	for i := range txs {
		txs[i].IsFraud = nil
	}
	rep, err := Analyze(txs, DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.False(t, rep.Labeled)
	assert.Nil(t, rep.Supervised)
	assert.InDelta(t, float64(rep.AnomalyCount)/300, rep.AnomalyRate, 1e-12)
}

func TestSupervisedMetrics(t *testing.T) {
	yes, no := true, false
	txs := []models.Transaction{
		{IsFraud: &yes}, {IsFraud: &yes}, {IsFraud: &no}, {IsFraud: &no},
	}
	m := supervised(txs, []bool{true, false, true, false})

	assert.Equal(t, models.ConfusionMatrix{TruePositive: 1, FalsePositive: 1, TrueNegative: 1, FalseNegative: 1}, m.Confusion)
	assert.Equal(t, 0.5, m.Precision)
	assert.Equal(t, 0.5, m.Recall)
	assert.Equal(t, 0.5, m.F1)
	assert.Equal(t, 0.5, m.FraudRate)

	none := supervised(txs, []bool{false, false, false, false})
	assert.Zero(t, none.Precision)
	assert.Zero(t, none.F1)
}
