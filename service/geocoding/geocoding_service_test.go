/*
 * @module service/geocoding/geocoding_service_test
 * @description 地理编码服务单元测试
 * @architecture 测试层 - 单元测试
 */

package geocoding

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/testutil"
)

// fakeGeocoder 预置应答的远程坐标桩
type fakeGeocoder struct {
	lng, lat float64
	err      error
	calls    int
}

func (f *fakeGeocoder) Lookup(string) (float64, float64, error) {
	f.calls++
	return f.lng, f.lat, f.err
}

// TestCoordinatesCacheFirst 测试缓存命中时不调远程
func TestCoordinatesCacheFirst(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	remote := &fakeGeocoder{lng: 1, lat: 1}
	svc := NewService(tdb.DB, remote)
	require.NoError(t, svc.SaveCoordinates("幸福小区", 116.4, 39.9))

	lng, lat, ok := svc.Coordinates("幸福小区")
	require.True(t, ok)
	assert.Equal(t, 116.4, lng)
	assert.Equal(t, 39.9, lat)
	assert.Zero(t, remote.calls)
}

// TestCoordinatesRemoteFallback 测试未命中时调远程并回写缓存
func TestCoordinatesRemoteFallback(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	remote := &fakeGeocoder{lng: 120.1, lat: 30.2}
	svc := NewService(tdb.DB, remote)

	lng, lat, ok := svc.Coordinates("新地址")
	require.True(t, ok)
	assert.Equal(t, 120.1, lng)
	assert.Equal(t, 30.2, lat)
	assert.Equal(t, 1, remote.calls)

	// 第二次命中缓存，不再调远程
	_, _, ok = svc.Coordinates("新地址")
	require.True(t, ok)
	assert.Equal(t, 1, remote.calls)

	var cache models.GeocodingCache
	require.NoError(t, tdb.DB.First(&cache, "address = ?", "新地址").Error)
	assert.Equal(t, 120.1, cache.Longitude)
}

// TestCoordinatesRemoteFailure 测试远程失败时静默返回未命中
func TestCoordinatesRemoteFailure(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewService(tdb.DB, &fakeGeocoder{err: errors.New("配额用尽")})
	_, _, ok := svc.Coordinates("新地址")
	assert.False(t, ok)

	// 未配置远程服务时仅查缓存
	svc = NewService(tdb.DB, nil)
	_, _, ok = svc.Coordinates("新地址")
	assert.False(t, ok)
}

// TestSaveCoordinatesUpdates 测试坐标缓存覆盖更新
func TestSaveCoordinatesUpdates(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewService(tdb.DB, nil)
	require.NoError(t, svc.SaveCoordinates("幸福小区", 116.4, 39.9))
	require.NoError(t, svc.SaveCoordinates("幸福小区", 117.0, 40.0))

	var rows int64
	require.NoError(t, tdb.DB.Model(&models.GeocodingCache{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	lng, lat, ok := svc.Coordinates("幸福小区")
	require.True(t, ok)
	assert.Equal(t, 117.0, lng)
	assert.Equal(t, 40.0, lat)
}

// TestTiandituClientLookup 测试天地图客户端响应解析
func TestTiandituClientLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("tk"))
		assert.Contains(t, r.URL.Query().Get("ds"), "keyWord")
		w.Write([]byte(`{"status":"0","location":{"lon":"116.4","lat":39.9}}`))
	}))
	defer server.Close()

	client := NewTiandituClient("test-key")
	client.baseURL = server.URL

	lng, lat, err := client.Lookup("幸福小区")
	require.NoError(t, err)
	assert.Equal(t, 116.4, lng)
	assert.Equal(t, 39.9, lat)
}

// TestTiandituClientErrorStatus 测试非零状态码报错
func TestTiandituClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"101"}`))
	}))
	defer server.Close()

	client := NewTiandituClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Lookup("幸福小区")
	assert.Error(t, err)
}
