package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/matchrecord --output domain/matchrecord --outpkg matchrecordmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/news --output domain/news --outpkg newsmock --filename provider_mock.go
