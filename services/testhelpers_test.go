package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/storage"
	"github.com/andrrresj/automotive-market-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func parseTable(t *testing.T, name, csv string) *models.Table {
	t.Helper()
	tbl, err := storage.ParseCSV(name, strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const salesCSV = `year,make,model,state,sellingprice
2018,BMW,3 Series,ca,45000
2015,Toyota,Camry,tx,500
2016,Ford,F-150,tx,
1999,Lexus,ES,fl,12000
2020,Lexus,RX,fl,38000
2019,,Mystery,ca,20000
2017,Porsche,911,ca,250000
2014,Volvo,XC90,ny,21000
2021,Tesla,Model 3,ca,39000
`

const specsCSV = `Make,Model,Year,Engine HP,MSRP,Market Category
Ferrari,F12,2015,731,250000,"Exotic,High-Performance"
BMW,M5,2016,560,95000,"Factory Tuner,Luxury,High-Performance"
Audi,A4,2017,,37000,Luxury
Honda,Civic,2017,158,19000,
Lexus,LX,1998,230,40000,Luxury
Toyota,Yaris,2016,106,9000,Hatchback
Cadillac,Escalade,2017,420,73000,"Luxury,Performance"
`
