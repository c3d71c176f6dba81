package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/quantfold/fohlcv/pkg/marketdata/provider Provider
