package weather

// window returns a copy of the city's current window.
func (e *Engine) window(city string) (SampleWindow, error) {
	st, err := e.lookup(city)
	if err != nil {
		return SampleWindow{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.window.Clone(), nil
}

// breaches returns the city's current consecutive-breach count.
func (e *Engine) breaches(city string) (int, error) {
	st, err := e.lookup(city)
	if err != nil {
		return 0, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.breaches.Consecutive(), nil
}
