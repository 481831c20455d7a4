package terminal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/diskstore"
	"github.com/antibyte/nxterm/pkg/logger"
)

// maxDiskText is the size of a full disk in data manager text, with
// room for comments and line breaks.
const maxDiskText = datamanager.DataSize*3 + 64*1024

// DiskCatalog is a DiskStore that can also list and delete disks.
type DiskCatalog interface {
	DiskStore
	ListDisks() ([]string, error)
	DeleteDisk(name string) error
}

// DiskAPI serves /api/disks: GET lists the disks, GET ?name= downloads
// one, PUT ?name= uploads one and DELETE ?name= removes it.
type DiskAPI struct {
	store     DiskCatalog
	validator *SecurityValidator
}

func NewDiskAPI(store DiskCatalog) *DiskAPI {
	return &DiskAPI{store: store, validator: NewSecurityValidator()}
}

func (d *DiskAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		d.list(w)
		return
	}
	if err := d.validator.ValidateDiskName(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		text, err := d.store.LoadDisk(name)
		if err != nil {
			d.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, text)
	case http.MethodPut:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxDiskText+1))
		if err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if len(body) > maxDiskText {
			http.Error(w, "Disk too large", http.StatusRequestEntityTooLarge)
			return
		}
		dm := datamanager.New()
		if err := dm.Import(string(body), false); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := d.store.SaveDisk(name, dm.Export()); err != nil {
			d.fail(w, err)
			return
		}
		logger.Info(logger.AreaDisk, "Disk %s uploaded (%d bytes)", name, dm.CurrentSize())
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := d.store.DeleteDisk(name); err != nil {
			d.fail(w, err)
			return
		}
		logger.Info(logger.AreaDisk, "Disk %s deleted", name)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (d *DiskAPI) list(w http.ResponseWriter) {
	names, err := d.store.ListDisks()
	if err != nil {
		d.fail(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Disks []string `json:"disks"`
	}{names})
}

func (d *DiskAPI) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, diskstore.ErrDiskNotFound) {
		http.Error(w, "Disk not found", http.StatusNotFound)
		return
	}
	logger.Error(logger.AreaDisk, "Disk API: %v", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
