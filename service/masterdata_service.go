// file: service/masterdata_service.go

package service

import (
	"context"
	"encoding/json"
	"time"
	"wiser-api/model"
	"wiser-api/repository"

	"github.com/redis/go-redis/v9"
)

const masterDataCacheKey = "master_data:all"

// MasterDataService manages reference data. The full list is read by every
// client on page load, so it is served through a cache-aside Redis layer and
// invalidated on any write.
type MasterDataService struct {
	repo        repository.IMasterDataRepository
	redisClient *redis.Client
}

func NewMasterDataService(repo repository.IMasterDataRepository, redisClient *redis.Client) *MasterDataService {
	return &MasterDataService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *MasterDataService) Create(req model.CreateMasterDataRequest) (*model.MasterData, error) {
	row := &model.MasterData{
		Category: req.Category,
		Name:     req.Name,
		Value:    req.Value,
	}
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return row, nil
}

// Import creates a batch of rows in one transaction and returns the count.
func (s *MasterDataService) Import(req model.ImportMasterDataRequest) (int, error) {
	count, err := s.repo.CreateBatch(req.Rows)
	if err != nil {
		return 0, err
	}
	s.invalidateCache()
	return count, nil
}

func (s *MasterDataService) Get(id int) (*model.MasterData, error) {
	return s.repo.GetByID(id)
}

// List serves the full reference-data set, cache first.
func (s *MasterDataService) List() ([]*model.MasterData, error) {
	ctx := context.Background()

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, masterDataCacheKey).Result()
		if err == nil {
			var rows []*model.MasterData
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(rows); err == nil {
			s.redisClient.Set(ctx, masterDataCacheKey, data, 10*time.Minute)
		}
	}

	return rows, nil
}

func (s *MasterDataService) Update(id int, req model.UpdateMasterDataRequest) (*model.MasterData, error) {
	row, err := s.repo.Update(id, req)
	if err != nil {
		return nil, err
	}
	s.invalidateCache()
	return row, nil
}

func (s *MasterDataService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *MasterDataService) invalidateCache() {
	if s.redisClient != nil {
		s.redisClient.Del(context.Background(), masterDataCacheKey)
	}
}
