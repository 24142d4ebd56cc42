// file: service/masterdata_service_test.go

package service

import (
	"testing"
	"wiser-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMasterDataRepo struct{ mock.Mock }

func (m *mockMasterDataRepo) Create(row *model.MasterData) error {
	args := m.Called(row)
	return args.Error(0)
}
func (m *mockMasterDataRepo) CreateBatch(rows []model.CreateMasterDataRequest) (int, error) {
	args := m.Called(rows)
	return args.Int(0), args.Error(1)
}
func (m *mockMasterDataRepo) GetByID(id int) (*model.MasterData, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MasterData), args.Error(1)
}
func (m *mockMasterDataRepo) GetAll() ([]*model.MasterData, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MasterData), args.Error(1)
}
func (m *mockMasterDataRepo) Update(id int, req model.UpdateMasterDataRequest) (*model.MasterData, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MasterData), args.Error(1)
}
func (m *mockMasterDataRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// The service has to work without a cache at all; a nil client means every
// call goes straight to the repository.
func TestMasterDataService_ListWithoutCache(t *testing.T) {
	repo := new(mockMasterDataRepo)
	masterDataService := NewMasterDataService(repo, nil)

	rows := []*model.MasterData{
		{ID: 1, Category: "skill", Name: "Go"},
		{ID: 2, Category: "skill", Name: "PostgreSQL"},
	}
	repo.On("GetAll").Return(rows, nil).Twice()

	got, err := masterDataService.List()
	assert.NoError(t, err)
	assert.Equal(t, rows, got)

	// No cache to hit, so a second call lands on the repository again.
	_, err = masterDataService.List()
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMasterDataService_Import(t *testing.T) {
	repo := new(mockMasterDataRepo)
	masterDataService := NewMasterDataService(repo, nil)

	batch := []model.CreateMasterDataRequest{
		{Category: "skill", Name: "Go"},
		{Category: "level", Name: "Senior"},
	}
	repo.On("CreateBatch", batch).Return(2, nil).Once()

	count, err := masterDataService.Import(model.ImportMasterDataRequest{Rows: batch})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	repo.AssertExpectations(t)
}
