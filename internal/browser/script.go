package browser

// scrollProbeJS is the scroll-step probe. Placeholders: note item selector,
// loading indicator selector, settle delay in milliseconds. Resolves to
// {height, item_count, loading} once pending images have finished and the
// page has settled after the scroll.
const scrollProbeJS = `
(function() {
	const waitForLoad = () => {
		const images = Array.from(document.images);
		const pending = images.filter(img => !img.complete);

		return Promise.all(pending.map(img =>
			new Promise(resolve => {
				img.onload = img.onerror = resolve;
			})
		)).then(() => {
			window.scrollTo(0, document.body.scrollHeight);
			return new Promise(resolve => {
				setTimeout(() => {
					resolve({
						height: document.body.scrollHeight,
						item_count: document.querySelectorAll('%s').length,
						loading: !!document.querySelector('%s')
					});
				}, %d);
			});
		});
	};

	return waitForLoad();
})()
`

// watcherJS installs the 500ms loading-flag sampler and a MutationObserver
// that calls the exposed new-content binding on DOM changes. Placeholders:
// loading indicator selector, binding name (twice). Returns true; guards
// against double installation.
const watcherJS = `
(function() {
	if (window.__xhsWatcher) {
		return true;
	}
	window.__xhsWatcher = true;

	window.__xhsLoading = false;
	setInterval(() => {
		window.__xhsLoading = !!document.querySelector('%s');
	}, 500);

	const observer = new MutationObserver(() => {
		if (typeof window['%s'] === 'function') {
			window['%s']('');
		}
	});
	observer.observe(document.body, { childList: true, subtree: true });

	return true;
})()
`
