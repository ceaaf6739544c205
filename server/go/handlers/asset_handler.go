/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package handlers

import (
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// Asset is a static resource served at a fixed path.
type Asset interface {
	// Open opens the asset's current contents.
	Open() (io.ReadCloser, error)
	// ContentType returns the asset's MIME type.
	ContentType() string
}

type fileAsset struct {
	path        string
	contentType string
}

// NewFileAsset returns an Asset serving the file at path.  The file is read
// anew on every request.
func NewFileAsset(path, contentType string) Asset {
	return &fileAsset{
		path:        path,
		contentType: contentType,
	}
}

func (fa *fileAsset) Open() (io.ReadCloser, error) {
	return os.Open(fa.path)
}

func (fa *fileAsset) ContentType() string {
	return fa.contentType
}

type fsAsset struct {
	fsys        fs.FS
	name        string
	contentType string
}

// NewFSAsset returns an Asset serving the named file within fsys.
func NewFSAsset(fsys fs.FS, name, contentType string) Asset {
	return &fsAsset{
		fsys:        fsys,
		name:        name,
		contentType: contentType,
	}
}

func (fa *fsAsset) Open() (io.ReadCloser, error) {
	return fa.fsys.Open(fa.name)
}

func (fa *fsAsset) ContentType() string {
	return fa.contentType
}

// AssetHandler is a Handler serving static assets by path.
type AssetHandler struct {
	assets map[string]Asset
}

// NewAssetHandler returns a new, empty AssetHandler.
func NewAssetHandler() *AssetHandler {
	return &AssetHandler{
		assets: map[string]Asset{},
	}
}

// With adds an asset served at the specified path, replacing any asset
// already served there.  It supports chaining.
func (ah *AssetHandler) With(path string, asset Asset) *AssetHandler {
	ah.assets[path] = asset
	return ah
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (ah *AssetHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := make(map[string]func(http.ResponseWriter, *http.Request), len(ah.assets))
	for path, asset := range ah.assets {
		ret[path] = serveAsset(asset)
	}
	return ret
}

func serveAsset(asset Asset) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		rc, err := asset.Open()
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, req)
			return
		}
		if err != nil {
			http.Error(w, "Failed to open asset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", asset.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		io.Copy(w, rc)
	}
}
