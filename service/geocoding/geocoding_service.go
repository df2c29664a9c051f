/*
 * @module service/geocoding/geocoding_service
 * @description 地理编码服务，缓存优先查询地址经纬度，未命中时调用远程坐标服务
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 地图查询 -> 本地缓存命中返回 -> 未命中调远程并回写缓存
 * @rules 远程坐标服务是外部协作方，失败时静默跳过该地点，不影响其余数据
 * @dependencies gorm.io/gorm
 * @refs service/situation
 */

package geocoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
)

// Geocoder 远程坐标查询能力
type Geocoder interface {
	Lookup(address string) (lng, lat float64, err error)
}

// Service 地理编码服务
type Service struct {
	db     *gorm.DB
	remote Geocoder // 可为 nil，表示仅查缓存
}

// NewService 创建地理编码服务实例
func NewService(db *gorm.DB, remote Geocoder) *Service {
	return &Service{db: db, remote: remote}
}

// Coordinates 获取地址经纬度
// 先查缓存；未命中且配置了远程服务时调用远程并回写缓存
func (s *Service) Coordinates(address string) (float64, float64, bool) {
	var cache models.GeocodingCache
	err := s.db.First(&cache, "address = ?", address).Error
	if err == nil {
		return cache.Longitude, cache.Latitude, true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("查询地理编码缓存失败", "address", address, "error", err)
		return 0, 0, false
	}

	if s.remote == nil {
		return 0, 0, false
	}

	lng, lat, err := s.remote.Lookup(address)
	if err != nil {
		slog.Warn("远程坐标查询失败", "address", address, "error", err)
		return 0, 0, false
	}

	if err := s.SaveCoordinates(address, lng, lat); err != nil {
		slog.Error("写入地理编码缓存失败", "address", address, "error", err)
	}
	return lng, lat, true
}

// SaveCoordinates 保存地址经纬度到缓存，已存在时更新
func (s *Service) SaveCoordinates(address string, lng, lat float64) error {
	var cache models.GeocodingCache
	err := s.db.First(&cache, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.GeocodingCache{
			Address:   address,
			Longitude: lng,
			Latitude:  lat,
		}).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&cache).Updates(map[string]interface{}{
		"longitude": lng,
		"latitude":  lat,
	}).Error
}

// TiandituClient 天地图地理编码客户端
type TiandituClient struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewTiandituClient 创建天地图客户端实例
func NewTiandituClient(key string) *TiandituClient {
	return &TiandituClient{
		key:     key,
		baseURL: "https://api.tianditu.gov.cn/geocoder",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup 调用天地图地理编码接口
func (c *TiandituClient) Lookup(address string) (float64, float64, error) {
	keyword, err := json.Marshal(map[string]string{"keyWord": address})
	if err != nil {
		return 0, 0, err
	}

	query := url.Values{}
	query.Set("ds", string(keyword))
	query.Set("tk", c.key)

	resp, err := c.client.Get(c.baseURL + "?" + query.Encode())
	if err != nil {
		return 0, 0, fmt.Errorf("请求天地图失败: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Status   string `json:"status"`
		Location struct {
			Lon interface{} `json:"lon"`
			Lat interface{} `json:"lat"`
		} `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("解析天地图响应失败: %w", err)
	}
	if payload.Status != "0" {
		return 0, 0, fmt.Errorf("天地图返回状态 %s", payload.Status)
	}

	lng, errLng := cast.ToFloat64E(payload.Location.Lon)
	lat, errLat := cast.ToFloat64E(payload.Location.Lat)
	if errLng != nil || errLat != nil {
		return 0, 0, errors.New("天地图返回坐标格式错误")
	}
	return lng, lat, nil
}
